package strings

import (
	"testing"

	kit "unirank/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("nil should fall back, got %v", got)
	}
	if got := IfEmpty([]string{"POST", "DELETE"}, def); len(got) != 2 {
		t.Fatalf("non-empty should pass through, got %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("universities", "module name"); got != "universities" {
		t.Fatalf("got %q", got)
	}
	kit.MustPanic(t, func() { _ = MustString(" \t", "module name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"meta":           "/meta",
		"/universities/": "/universities",
		"  /imports  ":   "/imports",
		"//countries//":  "/countries",
		"ranks/by-year":  "/ranks/by-year",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " // "} {
		kit.MustPanic(t, func() { _ = MustPrefix(in) })
	}
}
