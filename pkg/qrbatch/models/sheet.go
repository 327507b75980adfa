package models

// Row is an ordered mapping from column name to cell value.
type Row struct {
	// Position is the zero-based index of the row among the sheet's data rows.
	Position int `json:"position"`
	// Line is the 1-based spreadsheet row number.
	Line int `json:"line"`
	// Cells holds one entry per sheet column, in header order.
	Cells []Cell `json:"cells"`
}

// Value returns the value at column position i, or nil when i is outside
// the row.
func (r Row) Value(i int) (interface{}, bool) {
	if i < 0 || i >= len(r.Cells) {
		return nil, false
	}
	return r.Cells[i].Value, true
}

// Select returns a view of the row restricted to the given columns, keeping
// the row's column order. Columns are matched by exact name.
func (r Row) Select(columns []string) Row {
	keep := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		keep[c] = struct{}{}
	}
	view := Row{Position: r.Position, Line: r.Line, Cells: make([]Cell, 0, len(columns))}
	for _, c := range r.Cells {
		if _, ok := keep[c.Column]; ok {
			view.Cells = append(view.Cells, c)
		}
	}
	return view
}

// Sheet is one named table of a workbook.
type Sheet struct {
	// Name is the sheet name as it appears in the workbook.
	Name string `json:"name"`
	// Columns are the header names in sheet order. Names are unique.
	Columns []string `json:"columns"`
	// Rows are the data rows below the header.
	Rows []Row `json:"rows,omitempty"`
}
