package models

// WriteKind selects the payload of a GridWrite.
type WriteKind string

const (
	// WriteText writes GridWrite.Text as a string value.
	WriteText WriteKind = "text"
	// WriteNumber writes GridWrite.Number as a numeric value.
	WriteNumber WriteKind = "number"
	// WriteFormula writes GridWrite.Formula.
	WriteFormula WriteKind = "formula"
	// WriteFillDown replicates the formula at (Row, Col) into the FillRows cells below it.
	WriteFillDown WriteKind = "fill_down"
)

// Alignment is a horizontal or vertical cell alignment.
type Alignment string

const (
	AlignNone  Alignment = ""
	AlignLeft  Alignment = "left"
	AlignRight Alignment = "right"
	AlignTop   Alignment = "top"
)

// CellFormat holds the formatting attributes applied to one cell.
type CellFormat struct {
	Bold bool `json:"bold,omitempty"`
	// FontSize in points; zero keeps the default.
	FontSize float64 `json:"font_size,omitempty"`
	// FontColor is an RRGGBB hex color.
	FontColor string `json:"font_color,omitempty"`
	// Fill is an RRGGBB hex background color.
	Fill string `json:"fill,omitempty"`
	// Horizontal alignment (left, right).
	Horizontal Alignment `json:"horizontal,omitempty"`
	// Vertical alignment (top).
	Vertical Alignment `json:"vertical,omitempty"`
	// NumberFormat is a custom number format code such as "#,##0" or "0%".
	NumberFormat string `json:"number_format,omitempty"`
	WrapText     bool   `json:"wrap_text,omitempty"`
}

// IsZero reports whether no formatting is requested.
func (f CellFormat) IsZero() bool {
	return f == CellFormat{}
}

// GridWrite represents one cell mutation handed to the grid collaborator.
type GridWrite struct {
	// Row is the target row (0-based).
	Row int `json:"row"`
	// Col is the target column (0-based).
	Col  int       `json:"col"`
	Kind WriteKind `json:"kind"`
	// Text is the payload for WriteText.
	Text string `json:"text,omitempty"`
	// Number is the payload for WriteNumber.
	Number float64 `json:"number,omitempty"`
	// Formula is the payload for WriteFormula.
	Formula string `json:"formula,omitempty"`
	// FillRows is the number of rows below (Row, Col) covered by WriteFillDown.
	FillRows int `json:"fill_rows,omitempty"`
	// Format is applied after the payload is written.
	Format CellFormat `json:"format,omitempty"`
}

// ColumnWidth sets the width of an inclusive column span in points.
type ColumnWidth struct {
	// From is the first column (0-based).
	From int `json:"from"`
	// To is the last column (0-based, inclusive).
	To     int     `json:"to"`
	Points float64 `json:"points"`
}

// Batch is a group of writes applied independently of other batches.
// A failure inside one batch never undoes an earlier batch.
type Batch struct {
	// Label names the batch in logs and errors (table title or "suggestions").
	Label  string        `json:"label"`
	Writes []GridWrite   `json:"writes"`
	Widths []ColumnWidth `json:"widths,omitempty"`
}
