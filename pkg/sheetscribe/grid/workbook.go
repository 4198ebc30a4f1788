package grid

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/layout"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoFormula indicates a fill-down source cell holds no formula.
var ErrNoFormula = errors.New("source cell has no formula")

var _ layout.Grid = (*Workbook)(nil)

// Workbook is an xlsx file acting as the grid collaborator.
// Writes stay in memory until Commit saves the file.
type Workbook struct {
	file   *excelize.File
	path   string
	styles map[models.CellFormat]int
}

// Open opens the workbook at path, or starts a new one when the file does not exist yet.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return newWorkbook(excelize.NewFile(), path), nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return newWorkbook(f, path), nil
}

func newWorkbook(f *excelize.File, path string) *Workbook {
	return &Workbook{file: f, path: path, styles: make(map[models.CellFormat]int)}
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// ActiveSheet returns the name of the active sheet.
func (w *Workbook) ActiveSheet() string {
	return w.file.GetSheetName(w.file.GetActiveSheetIndex())
}

// HasSheet reports whether a sheet exists.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Selection reads the range ref and its displayed values.
// Unqualified references resolve against the active sheet.
func (w *Workbook) Selection(ref string) (models.Selection, error) {
	sheet, area, err := ParseReference(ref)
	if err != nil {
		return models.Selection{}, err
	}
	if sheet == "" {
		sheet = w.ActiveSheet()
	}
	if !w.HasSheet(sheet) {
		return models.Selection{}, fmt.Errorf("sheet %q does not exist", sheet)
	}

	sel := models.Selection{
		Sheet: sheet,
		Row:   area.R1 - 1,
		Col:   area.C1 - 1,
		Rows:  area.R2 - area.R1 + 1,
		Cols:  area.C2 - area.C1 + 1,
	}
	sel.Values = make([][]string, 0, sel.Rows)
	for r := area.R1; r <= area.R2; r++ {
		row := make([]string, 0, sel.Cols)
		for c := area.C1; c <= area.C2; c++ {
			name, _ := excelize.CoordinatesToCellName(c, r)
			v, err := w.file.GetCellValue(sheet, name)
			if err != nil {
				return models.Selection{}, fmt.Errorf("read %s!%s: %w", sheet, name, err)
			}
			row = append(row, v)
		}
		sel.Values = append(sel.Values, row)
	}
	return sel, nil
}

// AddSheet creates a sheet named base, or base_2, base_3... when taken,
// makes it active and returns the name used.
func (w *Workbook) AddSheet(base string) (string, error) {
	name := base
	for i := 2; w.HasSheet(name); i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}

	idx, err := w.file.NewSheet(name)
	if err != nil {
		return "", fmt.Errorf("add sheet %q: %w", name, err)
	}
	w.file.SetActiveSheet(idx)
	return name, nil
}

// SetText writes a string value.
func (w *Workbook) SetText(sheet string, row, col int, value string) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	return w.file.SetCellStr(sheet, cell, value)
}

// SetNumber writes a numeric value.
func (w *Workbook) SetNumber(sheet string, row, col int, value float64) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	return w.file.SetCellFloat(sheet, cell, value, -1, 64)
}

// SetFormula writes a formula; the leading "=" is optional.
func (w *Workbook) SetFormula(sheet string, row, col int, formula string) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	return w.file.SetCellFormula(sheet, cell, strings.TrimPrefix(formula, "="))
}

// FillDown turns the formula at (row, col) into a shared formula covering
// the n cells below it, so each cell gets the formula with its references shifted.
func (w *Workbook) FillDown(sheet string, row, col, n int) error {
	if n <= 0 {
		return nil
	}
	src, err := cellName(row, col)
	if err != nil {
		return err
	}
	end, err := cellName(row+n, col)
	if err != nil {
		return err
	}

	formula, err := w.file.GetCellFormula(sheet, src)
	if err != nil {
		return err
	}
	if formula == "" {
		return fmt.Errorf("fill down from %s!%s: %w", sheet, src, ErrNoFormula)
	}

	formulaType, ref := excelize.STCellFormulaTypeShared, src+":"+end
	return w.file.SetCellFormula(sheet, src, strings.TrimPrefix(formula, "="), excelize.FormulaOpts{
		Type: &formulaType,
		Ref:  &ref,
	})
}

// SetFormat applies formatting to one cell. Identical formats share one style.
func (w *Workbook) SetFormat(sheet string, row, col int, format models.CellFormat) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	id, err := w.styleID(format)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, cell, cell, id)
}

// SetColumnWidth sets an inclusive span of columns to a width given in points.
func (w *Workbook) SetColumnWidth(sheet string, from, to int, points float64) error {
	start, err := columnName(from)
	if err != nil {
		return err
	}
	end, err := columnName(to)
	if err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, start, end, PointsToColumnWidth(points))
}

// Commit saves the workbook to its path.
func (w *Workbook) Commit() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save %s: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) styleID(format models.CellFormat) (int, error) {
	if id, ok := w.styles[format]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if format.Bold || format.FontSize > 0 || format.FontColor != "" {
		style.Font = &excelize.Font{Bold: format.Bold, Size: format.FontSize, Color: format.FontColor}
	}
	if format.Fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{format.Fill}}
	}
	if format.Horizontal != models.AlignNone || format.Vertical != models.AlignNone || format.WrapText {
		style.Alignment = &excelize.Alignment{
			Horizontal: string(format.Horizontal),
			Vertical:   string(format.Vertical),
			WrapText:   format.WrapText,
		}
	}
	if format.NumberFormat != "" {
		numFmt := format.NumberFormat
		style.CustomNumFmt = &numFmt
	}

	id, err := w.file.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	w.styles[format] = id
	return id, nil
}
