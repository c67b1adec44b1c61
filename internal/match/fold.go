package match

import (
	"strings"
	"unicode"
)

// Fold reduces an identifier to the form names are compared in: lower case
// with '_', '-' and blanks removed, so that hash_by, HashBy and hashBy agree.
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
