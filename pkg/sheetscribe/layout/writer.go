package layout

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/sheetscribe-go/internal/logging"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

// Grid is the spreadsheet collaborator batches are written to.
// Coordinates are 0-based.
type Grid interface {
	SetText(sheet string, row, col int, value string) error
	SetNumber(sheet string, row, col int, value float64) error
	SetFormula(sheet string, row, col int, formula string) error
	// FillDown replicates the formula at (row, col) into the n cells below it.
	FillDown(sheet string, row, col, n int) error
	SetFormat(sheet string, row, col int, format models.CellFormat) error
	SetColumnWidth(sheet string, from, to int, points float64) error
	// Commit flushes pending writes.
	Commit() error
}

// WriteFailure reports a batch the grid rejected.
// Batches before it were applied and are kept.
type WriteFailure struct {
	Batch     string
	Completed int
	Err       error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("write failed in %q after %d completed batch(es): %v", e.Batch, e.Completed, e.Err)
}

func (e *WriteFailure) Unwrap() error {
	return e.Err
}

// Writer applies planned batches to a Grid.
type Writer struct {
	grid   Grid
	logger *slog.Logger
}

// NewWriter creates a Writer. A nil logger discards output.
func NewWriter(grid Grid, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Writer{grid: grid, logger: logger}
}

// Write applies batches to sheet in order and commits.
// When a batch fails the remaining ones are skipped, what was already
// written is still committed, and a *WriteFailure is returned.
func (w *Writer) Write(sheet string, batches []models.Batch) error {
	for i, batch := range batches {
		if err := w.applyBatch(sheet, batch); err != nil {
			w.logger.Error("batch rejected", "sheet", sheet, "batch", batch.Label, "error", err)
			failure := &WriteFailure{Batch: batch.Label, Completed: i, Err: err}
			if cerr := w.grid.Commit(); cerr != nil {
				return fmt.Errorf("%w (commit: %v)", failure, cerr)
			}
			return failure
		}
		w.logger.Debug("batch written", "sheet", sheet, "batch", batch.Label, "writes", len(batch.Writes))
	}

	if err := w.grid.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (w *Writer) applyBatch(sheet string, batch models.Batch) error {
	for _, gw := range batch.Writes {
		if err := w.apply(sheet, gw); err != nil {
			return err
		}
	}
	for _, cw := range batch.Widths {
		if err := w.grid.SetColumnWidth(sheet, cw.From, cw.To, cw.Points); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) apply(sheet string, gw models.GridWrite) error {
	var err error
	switch gw.Kind {
	case models.WriteText:
		err = w.grid.SetText(sheet, gw.Row, gw.Col, gw.Text)
	case models.WriteNumber:
		err = w.grid.SetNumber(sheet, gw.Row, gw.Col, gw.Number)
	case models.WriteFormula:
		err = w.grid.SetFormula(sheet, gw.Row, gw.Col, gw.Formula)
	case models.WriteFillDown:
		err = w.grid.FillDown(sheet, gw.Row, gw.Col, gw.FillRows)
	default:
		err = fmt.Errorf("unknown write kind %q", gw.Kind)
	}
	if err != nil {
		return err
	}

	if gw.Format.IsZero() {
		return nil
	}
	return w.grid.SetFormat(sheet, gw.Row, gw.Col, gw.Format)
}
