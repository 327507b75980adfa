// Package qrbatch generates one QR code image per spreadsheet row.
package qrbatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/render"
)

// Config selects what a batch processes. It is read once before the run and
// not modified afterwards.
type Config struct {
	// Sheets lists the sheet names to process. Empty means all sheets.
	// Names missing from the workbook are ignored.
	Sheets []string `json:"sheets,omitempty"`
	// Filter picks the columns rendered into each QR code.
	Filter render.FilterSpec `json:"filter"`
	// HeaderRow is the 0-based row holding column names. Nil means the
	// first row.
	HeaderRow *int `json:"header_row,omitempty"`
	// IndexColumn supplies the numeric part of each file name.
	IndexColumn render.ColumnRef `json:"index_column"`
	// IdentifierColumn supplies the text suffix of each file name.
	IdentifierColumn render.ColumnRef `json:"identifier_column"`
}

// DefaultConfig returns a Config that processes every sheet and column and
// names files after the first column.
func DefaultConfig() Config {
	return Config{}
}

// Validate checks settings that must hold before any file is touched.
func (c Config) Validate() error {
	if c.HeaderRow != nil && *c.HeaderRow < 0 {
		return NewConfigError("Header.row", fmt.Errorf("%w: %d", ErrInvalidHeaderRow, *c.HeaderRow))
	}
	if c.IndexColumn.Position < 0 {
		return NewConfigError("Identifier.index_column", fmt.Errorf("%w: negative position", ErrInvalidValue))
	}
	if c.IdentifierColumn.Position < 0 {
		return NewConfigError("Identifier.identifier_column", fmt.Errorf("%w: negative position", ErrInvalidValue))
	}
	return nil
}

// ParseHeaderRow reads a header row setting. An empty value means no header
// row was configured.
func ParseHeaderRow(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, NewConfigError("Header.row", fmt.Errorf("%w: %q", ErrInvalidHeaderRow, s))
	}
	return &n, nil
}
