package normalize

import (
	"testing"
)

func TestKey_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "snake", in: "Total_Score", out: "totalscore"},
		{name: "spaced", in: "total score", out: "totalscore"},
		{name: "dashed upper", in: "TOTAL-SCORE", out: "totalscore"},
		{name: "ampersand", in: "Country&Regions", out: "countryregions"},
		{name: "bom", in: "\ufeffRank", out: "rank"},
		{name: "zero width", in: "Ye\u200bar", out: "year"},
		{name: "fullwidth", in: "ＲＡＮＫ", out: "rank"},
		{name: "composed accent kept", in: "País", out: "país"},
		{name: "control bytes", in: "Ra\x00nk\x7F", out: "rank"},
		{name: "empty", in: "", out: ""},
		{name: "only punctuation", in: " _-& ", out: ""},
	}
	for _, tc := range tests {
		if got := Key(tc.in); got != tc.out {
			t.Fatalf("%s: Key(%q) = %q, want %q", tc.name, tc.in, got, tc.out)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"MIT", "MIT"},
		{"a\tb\nc", "a\tb\nc"},
		{"a\x00b\x1bc", "abc"},
		{"x\u0085y", "xy"},
		{string([]byte{'o', 0xff, 'k'}), "ok"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.out {
			t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
