// Package parser reads spreadsheet workbooks into header-keyed rows.
package parser

import (
	"errors"
	"fmt"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/models"
	"github.com/xuri/excelize/v2"
)

// ErrHeaderOutOfRange indicates a header row index past the last sheet row.
var ErrHeaderOutOfRange = errors.New("header row out of range")

// Workbook is an open xlsx file. Close releases it.
type Workbook struct {
	f *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Workbook{f: f}, nil
}

// NewWorkbook wraps an already open excelize file.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{f: f}
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// ReadSheet reads sheetName using the given 0-based header row; nil means
// the first row. Rows above the header are dropped, as are rows with no
// values. Every returned row has one cell per column.
func (w *Workbook) ReadSheet(sheetName string, headerRow *int) (*models.Sheet, error) {
	rows, err := w.f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := &models.Sheet{Name: sheetName}
	if len(rows) == 0 {
		return sheet, nil
	}

	header := 0
	if headerRow != nil {
		header = *headerRow
	}
	if header < 0 || header >= len(rows) {
		return nil, fmt.Errorf("%w: row %d, sheet has %d rows", ErrHeaderOutOfRange, header, len(rows))
	}

	sheet.Columns = headerNames(rows[header], dataWidth(rows[header:]))

	for i, raw := range rows[header+1:] {
		if isBlank(raw) {
			continue
		}
		line := header + i + 2 // 1-based row number below the header
		sheet.Rows = append(sheet.Rows, models.Row{
			Position: len(sheet.Rows),
			Line:     line,
			Cells:    readCells(w.f, sheetName, line, raw, sheet.Columns),
		})
	}

	return sheet, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}
