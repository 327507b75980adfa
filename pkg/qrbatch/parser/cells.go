package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/models"
	"github.com/xuri/excelize/v2"
)

// readCells types the cells of one spreadsheet row against the header.
// line is the 1-based spreadsheet row number of raw, which holds stored
// (unformatted) cell values.
func readCells(f *excelize.File, sheetName string, line int, raw []string, columns []string) []models.Cell {
	cells := make([]models.Cell, len(columns))
	for colIdx, column := range columns {
		cells[colIdx].Column = column
		if colIdx >= len(raw) || raw[colIdx] == "" {
			continue
		}
		cells[colIdx].Value = typedValue(f, sheetName, colIdx+1, line, raw[colIdx])
	}
	return cells
}

// typedValue converts a stored cell value using the cell's type. Numeric
// cells become int64 or float64 whatever their number format, booleans
// become bool, everything else stays text. Date and time cells keep their
// formatted text since their stored value is a serial number.
func typedValue(f *excelize.File, sheetName string, col, row int, raw string) interface{} {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if isDateCell(f, sheetName, cellName) {
			if text, err := f.GetCellValue(sheetName, cellName); err == nil {
				return text
			}
		}
		return parseValue(raw)
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// isDateCell reports whether the cell's number format displays a date or
// time.
func isDateCell(f *excelize.File, sheetName, cellName string) bool {
	styleID, err := f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}
	return isBuiltinDateFormat(style.NumFmt)
}

// isBuiltinDateFormat reports whether a built-in number format id is a date
// or time format.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom format code has date or time tokens
// outside quoted literals, escapes and bracketed sections.
func isDateFormat(code string) bool {
	var quoted, bracket, escaped bool
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case quoted:
			quoted = r != '"'
		case bracket:
			bracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = true
		case r == '[':
			bracket = true
		case strings.ContainsRune("ymdhs", r):
			return true
		}
	}
	return false
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// headerNames builds unique column names from the header row. Empty header
// cells become "Unnamed: <i>" and repeated names get ".1", ".2", ...
// suffixes.
func headerNames(raw []string, width int) []string {
	names := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int)
	for i := range names {
		name := ""
		if i < len(raw) {
			name = raw[i]
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for used[name] {
			suffix[base]++
			name = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}
