package grid

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Area represents inclusive cell bounds (1-based, as excelize uses).
type Area struct {
	R1, C1, R2, C2 int
}

// ParseReference parses 'Sheet Name'!$A$1:$D$10, Sheet1!B2:C3, A1:C5 or B2.
// The sheet is empty when the reference is not sheet-qualified.
func ParseReference(ref string) (string, Area, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", Area{}, fmt.Errorf("empty range reference")
	}

	var sheet string
	rangeStr := ref
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		rangeStr = ref[idx+1:]
	}

	area, err := parseRangeToArea(rangeStr)
	if err != nil {
		return "", Area{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	return sheet, area, nil
}

// parseRangeToArea parses a range string like $A$1:$D$10, or a single cell.
func parseRangeToArea(rangeStr string) (Area, error) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Area{}, fmt.Errorf("expected one ':' separator")
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Area{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Area{}, err
	}

	// Normalize reversed ranges such as D10:A1.
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return Area{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}

// cellName converts 0-based coordinates to an A1 cell name.
func cellName(row, col int) (string, error) {
	return excelize.CoordinatesToCellName(col+1, row+1)
}

// columnName converts a 0-based column index to its letters.
func columnName(col int) (string, error) {
	return excelize.ColumnNumberToName(col + 1)
}
