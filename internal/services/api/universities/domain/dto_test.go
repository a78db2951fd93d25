package domain

import (
	"strings"
	"testing"

	"unirank/internal/core/ranking"
)

func TestClipQuery(t *testing.T) {
	cases := []struct {
		name          string
		in            ranking.Spec
		country, srch int
	}{
		{"short", ranking.Spec{Country: "France", Search: "paris"}, 6, 5},
		{"at cap", ranking.Spec{Country: strings.Repeat("a", MaxCountryLen), Search: strings.Repeat("b", MaxSearchLen)}, MaxCountryLen, MaxSearchLen},
		{"over cap", ranking.Spec{Country: strings.Repeat("a", 150), Search: strings.Repeat("b", 500)}, MaxCountryLen, MaxSearchLen},
		{"multibyte", ranking.Spec{Search: strings.Repeat("é", 250)}, 0, MaxSearchLen},
	}
	for _, tc := range cases {
		got := ClipQuery(tc.in)
		if n := len([]rune(got.Country)); n != tc.country {
			t.Fatalf("%s: country runes = %d want %d", tc.name, n, tc.country)
		}
		if n := len([]rune(got.Search)); n != tc.srch {
			t.Fatalf("%s: search runes = %d want %d", tc.name, n, tc.srch)
		}
	}
}
