package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

// Line prefixes of the suggestion grammar.
const (
	ColumnPrefix      = "COLUMN:"
	FormulaPrefix     = "FORMULA:"
	ExplanationPrefix = "EXPLANATION:"
	HeaderPrefix      = "HEADER:"
)

// DefaultFormulaHeader is used when a formula reply carries no HEADER line.
const DefaultFormulaHeader = "Result"

var (
	formulaField = regexp.MustCompile(`FORMULA:\s*(.+)`)
	headerField  = regexp.MustCompile(`HEADER:\s*(.+)`)
)

// ParseSuggestions reads COLUMN/FORMULA/EXPLANATION runs.
// A COLUMN line opens a new suggestion; runs without a header are dropped.
func ParseSuggestions(response string) []models.Suggestion {
	var (
		out     []models.Suggestion
		current models.Suggestion
	)

	for _, raw := range splitLines(response) {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, ColumnPrefix):
			if current.Header != "" {
				out = append(out, current)
			}
			current = models.Suggestion{Header: fieldValue(line, ColumnPrefix)}
		case strings.HasPrefix(line, FormulaPrefix):
			current.Formula = fieldValue(line, FormulaPrefix)
		case strings.HasPrefix(line, ExplanationPrefix):
			current.Explanation = fieldValue(line, ExplanationPrefix)
		}
	}

	if current.Header != "" {
		out = append(out, current)
	}
	return out
}

// ParseFormulaReply reads a single FORMULA/HEADER reply.
// It reports false when no FORMULA field is present.
func ParseFormulaReply(response string) (models.Suggestion, bool) {
	m := formulaField.FindStringSubmatch(response)
	if m == nil {
		return models.Suggestion{}, false
	}

	s := models.Suggestion{
		Header:  DefaultFormulaHeader,
		Formula: strings.TrimSpace(m[1]),
	}
	if h := headerField.FindStringSubmatch(response); h != nil {
		if header := strings.TrimSpace(h[1]); header != "" {
			s.Header = header
		}
	}
	return s, true
}

func fieldValue(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}

// SelectionToText renders selected values for a prompt: tab between cells, newline between rows.
func SelectionToText(values [][]string) string {
	lines := make([]string, len(values))
	for i, row := range values {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}
