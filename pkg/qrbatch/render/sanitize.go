package render

import (
	"strings"
	"unicode"
)

// SanitizeFilename replaces path separators, the characters Windows forbids
// in file names, and all whitespace with underscores.
func SanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(`\/*?:"<>|`, r) {
			return '_'
		}
		return r
	}, s)
}
