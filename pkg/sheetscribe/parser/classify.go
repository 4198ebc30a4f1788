// Package parser turns model response text into tables, rows, tokens and suggestions.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

// Replacement glyphs for a leading sign that a spreadsheet engine would
// otherwise read as the start of a formula.
const (
	EmDash        = "—"
	FullWidthPlus = "＋"
)

// signedNumber matches a sign followed by a numeric literal, e.g. "-42", "+1,000", "-.5".
var signedNumber = regexp.MustCompile(`^[+-][,.]*\d`)

// numericNoise strips grouping separators, accounting parentheses, currency and percent glyphs.
var numericNoise = strings.NewReplacer(
	",", "",
	"(", "",
	")", "",
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	"₹", "",
	"%", "",
)

// Classify cleans a raw cell candidate and decides its kind.
//
// The formula-escape checks run before numeric detection so that a lone
// sign, or a sign in front of text, never reaches the grid unescaped.
func Classify(raw string) models.Token {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Token{Kind: models.KindText}
	}

	switch s {
	case "-":
		return textToken(s, EmDash)
	case "+":
		return textToken(s, FullWidthPlus)
	}

	if (s[0] == '-' || s[0] == '+') && !signedNumber.MatchString(s) {
		glyph := EmDash
		if s[0] == '+' {
			glyph = FullWidthPlus
		}
		return textToken(s, glyph+s[1:])
	}

	if v, ok := parseNumber(s); ok {
		if strings.Contains(s, "%") {
			return models.Token{Raw: s, Display: s, Kind: models.KindPercentage, Value: v / 100}
		}
		return models.Token{Raw: s, Display: s, Kind: models.KindNumber, Value: v}
	}

	return textToken(s, s)
}

func textToken(raw, display string) models.Token {
	return models.Token{Raw: raw, Display: display, Kind: models.KindText}
}

// parseNumber attempts to parse a cleaned value as a finite number.
// The original text must contain a digit or a grouping separator.
func parseNumber(s string) (float64, bool) {
	if !strings.ContainsAny(s, "0123456789,") {
		return 0, false
	}
	v, err := strconv.ParseFloat(numericNoise.Replace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
