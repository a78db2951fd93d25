package ranking

import (
	"sort"
	"strconv"
	"strings"
)

// Run filters, sorts and paginates records according to spec; records is not modified
func Run(records []Record, spec Spec) PageResult {
	spec = spec.Normalize()

	matched := Filter(records, spec)
	Sort(matched, spec.SortBy, spec.Desc())

	total := len(matched)
	page := []Record{}
	// offset may overflow for absurd page/limit pairs; those pages are simply empty
	if offset := (spec.Page - 1) * spec.Limit; offset >= 0 && offset < total {
		end := total
		if rest := total - offset; spec.Limit < rest {
			end = offset + spec.Limit
		}
		page = append(page, matched[offset:end]...)
	}

	return PageResult{
		Universities: page,
		Pagination: Pagination{
			Page:       spec.Page,
			Limit:      spec.Limit,
			Total:      total,
			TotalPages: totalPages(total, spec.Limit),
		},
	}
}

func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total-1)/limit + 1
}

// Filter returns a new slice with the records matching every present filter of spec
func Filter(records []Record, spec Spec) []Record {
	country := strings.ToLower(spec.Country)
	search := strings.ToLower(spec.Search)

	var year float64
	yearSet := strings.TrimSpace(spec.Year) != ""
	if yearSet {
		y, err := strconv.ParseFloat(strings.TrimSpace(spec.Year), 64)
		if err != nil {
			return []Record{}
		}
		year = y
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if country != "" && !strings.Contains(strings.ToLower(r.Country), country) {
			continue
		}
		if yearSet && float64(r.Year) != year {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.University), search) &&
			!strings.Contains(strings.ToLower(r.Country), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort orders records in place by field; unknown fields leave only the id tiebreak.
// Ties always break by ascending id, whatever the direction
func Sort(records []Record, field string, desc bool) {
	cmp := comparator(field)
	sort.SliceStable(records, func(i, j int) bool {
		c := cmp(records[i], records[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return records[i].ID < records[j].ID
	})
}

type compareFunc func(a, b Record) int

func comparator(field string) compareFunc {
	switch field {
	case "id":
		return func(a, b Record) int { return cmpInt64(a.ID, b.ID) }
	case "rank":
		return func(a, b Record) int { return cmpInt64(int64(rankOf(a)), int64(rankOf(b))) }
	case "university":
		return func(a, b Record) int { return cmpText(a.University, b.University) }
	case "country":
		return func(a, b Record) int { return cmpText(a.Country, b.Country) }
	case "research":
		return func(a, b Record) int { return cmpFloat(a.Research, b.Research) }
	case "reputation":
		return func(a, b Record) int { return cmpFloat(a.Reputation, b.Reputation) }
	case "employment":
		return func(a, b Record) int { return cmpFloat(a.Employment, b.Employment) }
	case "international":
		return func(a, b Record) int { return cmpFloat(a.International, b.International) }
	case "total_score":
		return func(a, b Record) int { return cmpFloat(a.TotalScore, b.TotalScore) }
	case "star_rating":
		return func(a, b Record) int { return cmpText(a.StarRating, b.StarRating) }
	case "year":
		return func(a, b Record) int { return cmpInt64(int64(a.Year), int64(b.Year)) }
	}
	return func(Record, Record) int { return 0 }
}

// rankOf treats an unranked record as rank 0
func rankOf(r Record) int {
	if r.Rank == nil {
		return 0
	}
	return *r.Rank
}

func cmpText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Countries returns the distinct non empty countries in ascending order
func Countries(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)
	for _, r := range records {
		if r.Country == "" {
			continue
		}
		if _, ok := seen[r.Country]; ok {
			continue
		}
		seen[r.Country] = struct{}{}
		out = append(out, r.Country)
	}
	sort.Strings(out)
	return out
}

// Years returns the distinct years, newest first
func Years(records []Record) []int {
	seen := make(map[int]struct{}, len(records))
	out := make([]int, 0)
	for _, r := range records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Find returns the record with id
func Find(records []Record, id int64) (Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
