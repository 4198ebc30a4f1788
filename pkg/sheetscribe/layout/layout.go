// Package layout decides where and how extracted content lands on the grid.
//
// Planning is pure: PlanTables, PlanSuggestions and PlanResponseText turn
// parsed values into batches of GridWrites. Writer is the only part that
// mutates a Grid.
package layout

import (
	"math"
	"strings"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

// Fill and font colors (RRGGBB).
const (
	TitleFill            = "4472C4"
	TitleFontColor       = "FFFFFF"
	TableHeaderFill      = "D9E2F3"
	SuggestionHeaderFill = "E7E6E6"
)

// Number formats.
const (
	GroupedIntegerFormat = "#,##0"
	PercentFormat        = "0%"
)

const (
	// MaxSuggestions caps the columns appended beside a selection.
	MaxSuggestions = 3
	// TitleFontSize is the point size of table titles.
	TitleFontSize = 12
	// tableGap is the number of blank rows left between tables.
	tableGap = 2
	// groupingThreshold is the magnitude from which numbers get a grouped format.
	groupingThreshold = 100
)

// Column widths (points) of sheets created from responses.
const (
	FirstColumnWidth    = 200
	DataColumnWidth     = 100
	ResponseColumnWidth = 80
	// dataColumnsTo is the last column (0-based, F) sized with DataColumnWidth.
	dataColumnsTo = 5
)

var (
	titleFormat = models.CellFormat{
		Bold:      true,
		FontSize:  TitleFontSize,
		FontColor: TitleFontColor,
		Fill:      TitleFill,
	}
	suggestionHeaderFormat = models.CellFormat{Bold: true, Fill: SuggestionHeaderFill}
)

// PlanTables lays tables out top to bottom starting at row 0.
// It returns one batch per table followed by a batch sizing the columns,
// or nil when there is nothing to write.
func PlanTables(tables []models.Table) []models.Batch {
	if len(tables) == 0 {
		return nil
	}

	batches := make([]models.Batch, 0, len(tables)+1)
	row := 0
	for _, table := range tables {
		batch := models.Batch{Label: tableLabel(table)}

		if table.HasTitle() {
			batch.Writes = append(batch.Writes, models.GridWrite{
				Row:    row,
				Col:    0,
				Kind:   models.WriteText,
				Text:   table.Title,
				Format: titleFormat,
			})
			row++
		}

		for rowIdx, cells := range table.Rows {
			for colIdx, tok := range cells {
				w := cellWrite(row, colIdx, tok)
				if rowIdx == 0 || looksLikeHeader(tok) {
					w.Format.Bold = true
					w.Format.Fill = TableHeaderFill
				}
				batch.Writes = append(batch.Writes, w)
			}
			row++
		}

		batches = append(batches, batch)
		row += tableGap
	}

	batches = append(batches, models.Batch{
		Label: "columns",
		Widths: []models.ColumnWidth{
			{From: 0, To: 0, Points: FirstColumnWidth},
			{From: 1, To: dataColumnsTo, Points: DataColumnWidth},
		},
	})
	return batches
}

// PlanSuggestions places up to MaxSuggestions columns right of the selection.
// Each column gets a header; an applicable formula goes in the row below the
// header and is filled down through the rest of the selected rows.
func PlanSuggestions(sel models.Selection, suggestions []models.Suggestion) models.Batch {
	batch := models.Batch{Label: "suggestions"}
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}

	for i, s := range suggestions {
		col := sel.NextCol() + i
		batch.Writes = append(batch.Writes, models.GridWrite{
			Row:    sel.Row,
			Col:    col,
			Kind:   models.WriteText,
			Text:   s.Header,
			Format: suggestionHeaderFormat,
		})

		if !s.HasFormula() {
			continue
		}
		batch.Writes = append(batch.Writes, models.GridWrite{
			Row:     sel.Row + 1,
			Col:     col,
			Kind:    models.WriteFormula,
			Formula: s.Formula,
		})
		if sel.Rows > 2 {
			batch.Writes = append(batch.Writes, models.GridWrite{
				Row:      sel.Row + 1,
				Col:      col,
				Kind:     models.WriteFillDown,
				FillRows: sel.Rows - 2,
			})
		}
	}
	return batch
}

// PlanResponseText places a whole response in A1 as wrapped, top-aligned text.
func PlanResponseText(text string) models.Batch {
	return models.Batch{
		Label: "response",
		Writes: []models.GridWrite{{
			Row:  0,
			Col:  0,
			Kind: models.WriteText,
			Text: text,
			Format: models.CellFormat{
				WrapText: true,
				Vertical: models.AlignTop,
			},
		}},
		Widths: []models.ColumnWidth{{From: 0, To: 0, Points: ResponseColumnWidth}},
	}
}

func cellWrite(row, col int, tok models.Token) models.GridWrite {
	if tok.IsNumeric() {
		w := models.GridWrite{
			Row:    row,
			Col:    col,
			Kind:   models.WriteNumber,
			Number: tok.Value,
			Format: models.CellFormat{Horizontal: models.AlignRight},
		}
		switch {
		case tok.Kind == models.KindPercentage:
			w.Format.NumberFormat = PercentFormat
		case math.Abs(tok.Value) >= groupingThreshold:
			w.Format.NumberFormat = GroupedIntegerFormat
		}
		return w
	}

	w := models.GridWrite{Row: row, Col: col, Kind: models.WriteText, Text: tok.Display}
	if col == 0 {
		w.Format.Horizontal = models.AlignLeft
	}
	return w
}

// looksLikeHeader catches repeated header rows further down a table.
func looksLikeHeader(tok models.Token) bool {
	return strings.Contains(tok.Raw, "Year") || strings.Contains(tok.Raw, "$")
}

func tableLabel(t models.Table) string {
	if t.HasTitle() {
		return t.Title
	}
	return "Table"
}
