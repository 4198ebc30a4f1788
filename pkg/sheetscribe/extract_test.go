package sheetscribe

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	response := "COLUMN: Total\nFORMULA: =A1+B1\n\nTotals:\n```\nA  1\nB  2\n```"

	got, err := Extract(response, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got.Tables) != 1 {
		t.Errorf("len(Tables) = %d, expected 1", len(got.Tables))
	}
	if len(got.Suggestions) != 1 {
		t.Errorf("len(Suggestions) = %d, expected 1", len(got.Suggestions))
	}

	got, err = Extract(response, Options{Mode: ModeTables})
	if err != nil {
		t.Fatalf("Extract(tables) error = %v", err)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("tables mode returned %d suggestions, expected 0", len(got.Suggestions))
	}
}

func TestExtractNothingFound(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected error
	}{
		{ModeAll, ErrNoTables},
		{ModeTables, ErrNoTables},
		{ModeSuggestions, ErrNoSuggestions},
	}

	for _, tt := range tests {
		_, err := Extract("nothing here", Options{Mode: tt.mode})
		var pf *ParseFailure
		if !errors.As(err, &pf) {
			t.Errorf("Extract(mode=%s) error = %v, expected *ParseFailure", tt.mode, err)
			continue
		}
		if !errors.Is(err, tt.expected) {
			t.Errorf("Extract(mode=%s) error = %v, expected %v", tt.mode, err, tt.expected)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"", ModeAll, false},
		{"tables", ModeTables, false},
		{"suggestions", ModeSuggestions, false},
		{"everything", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseMode(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
