package ranking

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSortBy = "rank"
	DefaultPage   = 1
	DefaultLimit  = 20

	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// Spec is a read request over the record set; zero values take the defaults
type Spec struct {
	Country   string
	Year      string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ParseSpec builds a Spec from raw query parameters; non numeric or non positive
// page and limit fall back to the defaults
func ParseSpec(q url.Values) Spec {
	return Spec{
		Country:   q.Get("country"),
		Year:      q.Get("year"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      positive(q.Get("page"), DefaultPage),
		Limit:     positive(q.Get("limit"), DefaultLimit),
	}.Normalize()
}

// Normalize fills defaults and canonicalizes the sort order
func (s Spec) Normalize() Spec {
	if strings.TrimSpace(s.SortBy) == "" {
		s.SortBy = DefaultSortBy
	}
	if s.Desc() {
		s.SortOrder = OrderDesc
	} else {
		s.SortOrder = OrderAsc
	}
	if s.Page <= 0 {
		s.Page = DefaultPage
	}
	if s.Limit <= 0 {
		s.Limit = DefaultLimit
	}
	return s
}

// Desc reports whether the sort order is descending ("desc" in any case)
func (s Spec) Desc() bool {
	return strings.EqualFold(strings.TrimSpace(s.SortOrder), OrderDesc)
}

func positive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
