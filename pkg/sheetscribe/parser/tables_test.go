package parser

import (
	"strings"
	"testing"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

func TestExtractTablesRevenueModel(t *testing.T) {
	response := strings.Join([]string{
		"Here is the model you asked for.",
		"",
		"1. Revenue Model:",
		"```",
		"Year   Revenue",
		"2023   1,000",
		"```",
		"Let me know if you need more.",
	}, "\n")

	tables := ExtractTables(response)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	table := tables[0]
	if table.Title != "Revenue Model" {
		t.Errorf("Expected title 'Revenue Model', got %q", table.Title)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	cell := table.Rows[1][1]
	if cell.Kind != models.KindNumber {
		t.Errorf("Expected number, got %q", cell.Kind)
	}
	if cell.Value != 1000 {
		t.Errorf("Expected 1000, got %v", cell.Value)
	}
}

func TestExtractTablesIgnoresProse(t *testing.T) {
	response := "Revenue   1,000\nCosts   500\nNo fences anywhere in this answer."
	if tables := ExtractTables(response); len(tables) != 0 {
		t.Errorf("Expected no tables, got %d", len(tables))
	}
}

func TestExtractTablesUnterminatedFence(t *testing.T) {
	response := strings.Join([]string{
		"Summary:",
		"```",
		"A   1",
		"```",
		"Truncated:",
		"```",
		"B   2",
		"C   3",
	}, "\n")

	tables := ExtractTables(response)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	if tables[0].Title != "Summary" {
		t.Errorf("Expected title 'Summary', got %q", tables[0].Title)
	}
}

func TestExtractTablesSkipsEmptyBlocks(t *testing.T) {
	response := "Empty:\n```\n-----\n\n```\n"
	if tables := ExtractTables(response); len(tables) != 0 {
		t.Errorf("Expected no tables, got %d", len(tables))
	}
}

func TestExtractTablesLanguageTagAndCRLF(t *testing.T) {
	response := "## **Cash Flow**\r\n```text\r\nMonth   Cash\r\nJan   -200\r\n```\r\n"
	tables := ExtractTables(response)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	if tables[0].Title != "Cash Flow" {
		t.Errorf("Expected title 'Cash Flow', got %q", tables[0].Title)
	}
	if got := tables[0].Rows[1][1].Value; got != -200 {
		t.Errorf("Expected -200, got %v", got)
	}
}

func TestExtractTablesDefaultTitle(t *testing.T) {
	response := "```\nA   1\n```\n```\nB   2\n```"
	tables := ExtractTables(response)
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}
	for i, table := range tables {
		if table.HasTitle() {
			t.Errorf("table %d: expected no title, got %q", i, table.Title)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1. Revenue Model:", "Revenue Model"},
		{"12.Costs", "Costs"},
		{"### Balance Sheet", "Balance Sheet"},
		{"**2. Assumptions:**", "Assumptions"},
		{"3. **Projections**:", "Projections"},
		{":", ""},
		{"Plain title", "Plain title"},
	}

	for _, tt := range tests {
		if result := cleanTitle(tt.input); result != tt.expected {
			t.Errorf("cleanTitle(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFindTableTitleLookback(t *testing.T) {
	lines := []string{"Too far away", "", "", "", "```"}
	if title := findTableTitle(lines, 4); title != "" {
		t.Errorf("Expected empty title, got %q", title)
	}

	lines = []string{"Close title", "", "", "```"}
	if title := findTableTitle(lines, 3); title != "Close title" {
		t.Errorf("Expected 'Close title', got %q", title)
	}
}

func TestExtractTablesDropsPipeAlignmentRow(t *testing.T) {
	response := "Sales:\n```\n| Region | Total |\n|:-------|------:|\n| North | 1,200 |\n```"

	tables := ExtractTables(response)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	rows := tables[0].Rows
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[1][0].Display != "North" || rows[1][1].Value != 1200 {
		t.Errorf("Expected data row North/1200, got %q/%v", rows[1][0].Display, rows[1][1].Value)
	}
}
