package models

// Table represents one fenced block of rows with its title.
type Table struct {
	// Title is the cleaned heading found above the fence; empty when none was usable.
	Title string `json:"title,omitempty"`
	// Rows contains the tokenized rows in source order.
	Rows []Row `json:"rows"`
}

// HasTitle reports whether the table carries a title worth printing.
// Empty titles and the placeholder names "Table" and "Data" are treated as absent.
func (t Table) HasTitle() bool {
	switch t.Title {
	case "", "Table", "Data":
		return false
	}
	return true
}

// Suggestion represents one proposed column parsed from a COLUMN/FORMULA/EXPLANATION run.
type Suggestion struct {
	// Header is the column header text.
	Header string `json:"header"`
	// Formula is the proposed formula; only formulas starting with "=" are applied.
	Formula string `json:"formula,omitempty"`
	// Explanation is the model's rationale for the column.
	Explanation string `json:"explanation,omitempty"`
}

// HasFormula reports whether the formula can be written to the grid.
func (s Suggestion) HasFormula() bool {
	return len(s.Formula) > 0 && s.Formula[0] == '='
}
