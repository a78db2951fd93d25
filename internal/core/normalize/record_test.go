package normalize

import (
	"reflect"
	"testing"
	"time"
)

func fixedClock(year int) Option {
	return WithClock(func() time.Time { return time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC) })
}

func TestDraft_MinimalRowDefaults(t *testing.T) {
	n := New(fixedClock(2031))

	got := n.Draft(Row{"University": "Test U", "Country": "Testland", "Total_Score": "88.5"}, 1)
	want := Draft{
		Rank:       1,
		University: "Test U",
		Country:    "Testland",
		TotalScore: 88.5,
		Year:       2031,
	}
	if got != want {
		t.Fatalf("Draft = %+v, want %+v", got, want)
	}
}

func TestDraft_CanonicalAliasAndFoldedKeys(t *testing.T) {
	n := New(fixedClock(2025))

	row := Row{
		"Rank":            "4",
		"university":      "Stanford University",
		"Country&Regions": "United States",
		"RESEARCH":        "100",
		" reputation ":    "97.5",
		"Employment":      100.0,
		"international":   "95.8",
		"TOTAL SCORE":     "99.2",
		"Star_Rating":     "★★★★★",
		"year":            "2024",
	}
	got := n.Draft(row, 9)
	want := Draft{
		Rank:          4,
		University:    "Stanford University",
		Country:       "United States",
		Research:      100,
		Reputation:    97.5,
		Employment:    100,
		International: 95.8,
		TotalScore:    99.2,
		StarRating:    "★★★★★",
		Year:          2024,
	}
	if got != want {
		t.Fatalf("Draft = %+v, want %+v", got, want)
	}
}

func TestDraft_EmptyValuesFallThroughToAliases(t *testing.T) {
	n := New(fixedClock(2025))

	row := Row{
		"country":         "",
		"Country":         "",
		"Country&Regions": "Japan",
		"university":      "",
		"University":      "Kyoto University",
	}
	got := n.Draft(row, 2)
	if got.Country != "Japan" || got.University != "Kyoto University" {
		t.Fatalf("alias fallthrough failed: %+v", got)
	}
}

func TestDraft_BadNumbersDefault(t *testing.T) {
	n := New(fixedClock(2030))

	got := n.Draft(Row{
		"University": "X",
		"Rank":       "unranked",
		"Research":   "n/a",
		"Year":       "0",
	}, 7)
	if got.Rank != 7 {
		t.Fatalf("rank = %d, want position 7", got.Rank)
	}
	if got.Research != 0 {
		t.Fatalf("research = %v, want 0", got.Research)
	}
	if got.Year != 2030 {
		t.Fatalf("year = %d, want clock year", got.Year)
	}

	zero := n.Draft(Row{"University": "Y", "Rank": "0"}, 3)
	if zero.Rank != 3 {
		t.Fatalf("rank 0 should default to position, got %d", zero.Rank)
	}
}

func TestWithYear_ForcesYearAndLeavesOriginal(t *testing.T) {
	base := New(fixedClock(2025))
	forced := base.WithYear(2024)

	row := Row{"University": "Oxford", "year": "2019"}
	if got := forced.Draft(row, 1).Year; got != 2024 {
		t.Fatalf("forced year = %d", got)
	}
	if got := base.Draft(row, 1).Year; got != 2019 {
		t.Fatalf("base normalizer was mutated, year = %d", got)
	}
}

func TestBatch_PositionsAreOneBased(t *testing.T) {
	n := New(fixedClock(2025))

	drafts := n.Batch([]Row{
		{"University": "A"},
		{"University": "B", "Rank": "10"},
		{"University": "C"},
	})
	ranks := []int{drafts[0].Rank, drafts[1].Rank, drafts[2].Rank}
	if !reflect.DeepEqual(ranks, []int{1, 10, 3}) {
		t.Fatalf("ranks = %v", ranks)
	}
	if len(n.Batch(nil)) != 0 {
		t.Fatalf("empty batch should give no drafts")
	}
}

func TestMissing_IsAliasAware(t *testing.T) {
	n := New()

	row := Row{"Institution": "MIT", "Country/Region": "US", "Overall": ""}
	got := n.Missing(row, Required...)
	if !reflect.DeepEqual(got, []Field{FieldTotalScore}) {
		t.Fatalf("Missing = %v, want [total_score]", got)
	}

	row["Score"] = "99"
	if got := n.Missing(row, Required...); len(got) != 0 {
		t.Fatalf("expected nothing missing, got %v", got)
	}
}

func TestAliases_CanonicalFirst(t *testing.T) {
	got := Aliases(FieldCountry)
	if got[0] != "country" || got[2] != "Country&Regions" {
		t.Fatalf("Aliases(country) = %v", got)
	}
}

func TestMissingColumns_HeaderOnly(t *testing.T) {
	header := []string{"Rank", "Institution", "COUNTRY / REGION", "Total Score"}
	if got := MissingColumns(header, Required...); len(got) != 0 {
		t.Fatalf("MissingColumns = %v, want none", got)
	}
	got := MissingColumns([]string{"University", "Year"}, Required...)
	if len(got) != 2 || got[0] != FieldCountry || got[1] != FieldTotalScore {
		t.Fatalf("MissingColumns = %v", got)
	}
}
