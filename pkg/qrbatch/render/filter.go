// Package render turns spreadsheet rows into QR payload text and artifact
// file names.
package render

import "strings"

// FilterSpec selects columns by pattern. When Include is non-empty Exclude is
// ignored.
type FilterSpec struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// SelectColumns returns the columns that survive spec, in their original
// order. Patterns match as case-insensitive substrings with line breaks
// removed from both sides.
func SelectColumns(columns []string, spec FilterSpec) []string {
	switch {
	case len(spec.Include) > 0:
		selected := make([]string, 0, len(columns))
		for _, col := range columns {
			if matchesAny(spec.Include, col) {
				selected = append(selected, col)
			}
		}
		return selected
	case len(spec.Exclude) > 0:
		selected := make([]string, 0, len(columns))
		for _, col := range columns {
			if !matchesAny(spec.Exclude, col) {
				selected = append(selected, col)
			}
		}
		return selected
	default:
		return append([]string(nil), columns...)
	}
}

func matchesAny(patterns []string, column string) bool {
	for _, p := range patterns {
		if ColumnMatches(p, column) {
			return true
		}
	}
	return false
}

// ColumnMatches reports whether column contains pattern, ignoring case and
// line breaks.
func ColumnMatches(pattern, column string) bool {
	return strings.Contains(foldColumn(column), foldColumn(pattern))
}

var lineBreakRemover = strings.NewReplacer("\r", "", "\n", "")

func foldColumn(s string) string {
	return strings.ToLower(lineBreakRemover.Replace(s))
}
