package render

import (
	"strings"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/models"
)

// ValueLineBreak replaces line breaks inside a rendered cell value.
const ValueLineBreak = " / "

// FormatRow renders each cell of row as "<column>: <value>", one per line.
// Line breaks in headers become spaces; line breaks in values become
// ValueLineBreak.
func FormatRow(row models.Row) string {
	lines := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		column := strings.TrimSpace(replaceLineBreaks(c.Column, " "))
		value := replaceLineBreaks(c.Text(), ValueLineBreak)
		lines = append(lines, column+": "+value)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func replaceLineBreaks(s, with string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", with)
}
