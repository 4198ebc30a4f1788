// Package models defines data structures for the response-to-spreadsheet pipeline.
package models

// ValueKind classifies an extracted cell value.
type ValueKind string

const (
	// KindText is a value written verbatim as a string.
	KindText ValueKind = "text"
	// KindNumber is a value written as a number.
	KindNumber ValueKind = "number"
	// KindPercentage is a value written as a fraction with a percent format.
	KindPercentage ValueKind = "percentage"
)

// Token represents a single classified cell candidate.
type Token struct {
	// Raw is the trimmed text the token was classified from.
	Raw string `json:"raw"`
	// Display is the cleaned string written for text tokens.
	Display string `json:"display"`
	// Kind is the classification of the value.
	Kind ValueKind `json:"kind"`
	// Value is the parsed numeric payload for number and percentage tokens.
	// Percentages are stored as fractions (45% is 0.45).
	Value float64 `json:"value,omitempty"`
}

// IsNumeric reports whether the token carries a numeric payload.
func (t Token) IsNumeric() bool {
	return t.Kind == KindNumber || t.Kind == KindPercentage
}

// Row is an ordered sequence of tokens; index is the column offset.
type Row []Token
