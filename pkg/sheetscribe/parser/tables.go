package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

// Fence is the delimiter that opens and closes a literal block.
const Fence = "```"

// titleLookback is how many lines above a fence are searched for a title.
const titleLookback = 3

var enumerationPrefix = regexp.MustCompile(`^\d+\.\s*`)

// ExtractTables returns the tables found inside fenced blocks of a response.
// Lines outside fences are ignored. A fence left open at the end of the
// response is dropped together with its rows.
func ExtractTables(response string) []models.Table {
	lines := splitLines(response)

	var (
		tables []models.Table
		inside bool
		title  string
		rows   []models.Row
	)

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if isFence(line) {
			if !inside {
				inside = true
				rows = nil
				title = findTableTitle(lines, i)
				continue
			}
			if len(rows) > 0 {
				tables = append(tables, models.Table{Title: title, Rows: rows})
			}
			inside = false
			rows = nil
			title = ""
			continue
		}

		if !inside || line == "" {
			continue
		}
		if row := Tokenize(line); len(row) > 0 {
			rows = append(rows, row)
		}
	}

	return tables
}

// findTableTitle looks upward from a fence for the nearest usable title line.
// A closing fence above ends the search: what lies beyond it belongs to the previous table.
func findTableTitle(lines []string, fenceIdx int) string {
	for i := fenceIdx - 1; i >= 0 && i >= fenceIdx-titleLookback; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if isFence(line) {
			return ""
		}
		if title := cleanTitle(line); title != "" {
			return title
		}
	}
	return ""
}

// cleanTitle strips heading markers, emphasis, enumeration and a trailing colon.
// "1. Revenue Model:" and "## **Revenue Model**" both become "Revenue Model".
func cleanTitle(line string) string {
	t := strings.TrimSpace(strings.TrimLeft(line, "#"))
	t = strings.Trim(t, "*_")
	t = enumerationPrefix.ReplaceAllString(t, "")
	t = strings.TrimSuffix(strings.TrimSpace(t), ":")
	t = strings.TrimSpace(strings.Trim(t, "*_"))
	t = strings.TrimSuffix(t, ":")
	return strings.TrimSpace(t)
}

func isFence(line string) bool {
	return strings.HasPrefix(line, Fence)
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
