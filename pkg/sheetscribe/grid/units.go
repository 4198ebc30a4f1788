// Package grid provides the excelize-backed spreadsheet the pipeline writes to.
package grid

import "math"

// PixelsPerPoint converts typographic points to pixels at 96 DPI.
// 1 inch = 72 points = 96 pixels.
const PixelsPerPoint = 96.0 / 72.0

// MaxDigitWidth is the pixel width of the widest digit in the default font (Calibri 11).
const MaxDigitWidth = 7

// cellPadding is the pixel margin Excel adds around column content.
const cellPadding = 5

// PointsToColumnWidth converts a width in points to Excel column width units
// (number of default-font characters), rounded to two decimals.
func PointsToColumnWidth(points float64) float64 {
	px := points * PixelsPerPoint
	width := math.Trunc((px-cellPadding)/MaxDigitWidth*100+0.5) / 100
	if width < 0 {
		return 0
	}
	return width
}
