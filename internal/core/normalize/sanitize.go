package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops bytes that should never reach the store from a spreadsheet cell:
// NUL and ASCII controls other than tab, CR and LF, DEL, C1 controls and invalid UTF-8
func Sanitize(s string) string {
	if s == "" || clean(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if dropRune(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func clean(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if dropRune(r) {
			return false
		}
	}
	return true
}

func dropRune(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}
