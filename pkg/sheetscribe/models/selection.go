package models

// Selection represents the anchor range a side-append write is placed beside.
type Selection struct {
	// Sheet is the sheet owning the selection.
	Sheet string `json:"sheet"`
	// Row is the first row (0-based).
	Row int `json:"row"`
	// Col is the first column (0-based).
	Col int `json:"col"`
	// Rows is the number of selected rows.
	Rows int `json:"rows"`
	// Cols is the number of selected columns.
	Cols int `json:"cols"`
	// Values holds the displayed cell values, row-major.
	Values [][]string `json:"values,omitempty"`
}

// IsSingleCell reports whether the selection covers exactly one cell.
func (s Selection) IsSingleCell() bool {
	return s.Rows == 1 && s.Cols == 1
}

// NextCol returns the first column to the right of the selection.
func (s Selection) NextCol() int {
	return s.Col + s.Cols
}
