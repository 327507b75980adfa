// Package models defines the tabular data structures read from a workbook.
package models

import (
	"math"
	"strconv"
)

// MissingText is how an empty cell renders as text. Identifier resolution
// relies on this exact token to detect blank rows.
const MissingText = "nan"

// Cell is a single column/value pair of a row.
type Cell struct {
	// Column is the header name the value sits under, exactly as read.
	Column string `json:"column"`
	// Value is nil for a missing cell, int64 or float64 for numbers,
	// or a string.
	Value interface{} `json:"value"`
}

// Text returns the display form of the cell value.
func (c Cell) Text() string {
	return FormatValue(c.Value)
}

// FormatValue renders a cell value as text. Missing values and NaN render as
// MissingText. Floats use exponent notation below 1e-4 and from 1e16 up.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return MissingText
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		switch {
		case math.IsNaN(val):
			return MissingText
		case math.IsInf(val, 1):
			return "inf"
		case math.IsInf(val, -1):
			return "-inf"
		}
		if abs := math.Abs(val); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
			return strconv.FormatFloat(val, 'e', -1, 64)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "True"
		}
		return "False"
	default:
		return MissingText
	}
}
