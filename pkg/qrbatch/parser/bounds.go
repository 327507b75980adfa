package parser

// dataWidth returns the number of columns spanned by non-empty cells in
// rows, i.e. one past the rightmost non-empty column.
func dataWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		for colIdx := len(row) - 1; colIdx >= width; colIdx-- {
			if row[colIdx] != "" {
				width = colIdx + 1
				break
			}
		}
	}
	return width
}

// isBlank reports whether every cell of row is empty.
func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
