package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

var (
	// separatorLine matches table-drawing artifacts such as "----", "|===|" or "___".
	separatorLine = regexp.MustCompile(`^[-\s|=_]+$`)
	// alignmentCell matches one cell of a markdown alignment row such as "|:---|---:|".
	alignmentCell = regexp.MustCompile(`^:?-+:?$`)
	// columnGap splits on runs of two or more whitespace characters or a tab.
	columnGap = regexp.MustCompile(`\s{2,}|\t`)
	// dataHint marks a field that looks like data rather than prose.
	dataHint = regexp.MustCompile(`[\d,%]`)
)

// Tokenize splits one line into classified cells.
// Separator lines yield an empty row, which callers drop.
func Tokenize(line string) models.Row {
	if separatorLine.MatchString(line) {
		return nil
	}

	trimmed := strings.TrimSpace(line)
	if isAlignmentRow(trimmed) {
		return nil
	}

	fields := splitFields(trimmed)
	if len(fields) == 0 {
		return nil
	}

	row := make(models.Row, 0, len(fields))
	for _, field := range fields {
		row = append(row, Classify(field))
	}
	return row
}

// splitFields returns the cell strings of a trimmed line.
func splitFields(line string) []string {
	if strings.HasPrefix(line, "|") {
		return splitPipeRow(line)
	}

	var fields []string
	for _, part := range columnGap.Split(line, -1) {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}

	// Single-space "label value value" rows cannot be told apart from prose
	// by the gap split; accept them when something after the label looks like data.
	if len(fields) <= 1 && strings.Contains(line, " ") {
		parts := strings.Fields(line)
		if len(parts) >= 2 && anyDataHint(parts[1:]) {
			fields = parts
		}
	}

	return fields
}

// splitPipeRow splits a markdown table row; inner empty cells keep their column.
func splitPipeRow(line string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "|"), "|")
	parts := strings.Split(inner, "|")
	fields := make([]string, len(parts))
	for i, part := range parts {
		fields[i] = strings.TrimSpace(part)
	}
	return fields
}

// isAlignmentRow reports whether a pipe row only carries column alignment markers.
func isAlignmentRow(line string) bool {
	if !strings.HasPrefix(line, "|") {
		return false
	}
	for _, cell := range splitPipeRow(line) {
		if !alignmentCell.MatchString(cell) {
			return false
		}
	}
	return true
}

func anyDataHint(parts []string) bool {
	for _, p := range parts {
		if dataHint.MatchString(p) {
			return true
		}
	}
	return false
}
