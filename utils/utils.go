package utils

import (
	"strings"

	"golang.org/x/text/width"
)

// NormalizeRosterNumber makes numeric and textual spellings of the same roster
// number compare equal: surrounding space is dropped, full-width digits become
// half-width and an integral decimal such as "7.0" (how spreadsheets export
// numbers) becomes "7". Leading zeros are significant.
func NormalizeRosterNumber(raw string) string {
	s := strings.TrimSpace(width.Narrow.String(raw))
	if i := strings.IndexByte(s, '.'); i > 0 && isDigits(s[:i]) && isZeros(s[i+1:]) {
		s = s[:i]
	}
	return s
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isZeros(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return s != ""
}
