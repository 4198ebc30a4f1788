package output

import (
	"strings"
	"testing"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

func TestToJSON(t *testing.T) {
	ex := &models.Extraction{
		Suggestions: []models.Suggestion{{Header: "Flag", Formula: "=IF(A1<B1,1,0)"}},
	}

	got, err := ToJSON(ex, false)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	expected := `{"suggestions":[{"header":"Flag","formula":"=IF(A1<B1,1,0)"}]}`
	if string(got) != expected {
		t.Errorf("ToJSON() = %s, expected %s", got, expected)
	}
}

func TestToJSONPretty(t *testing.T) {
	got, err := ToJSON(&models.Extraction{Tables: []models.Table{{Title: "T"}}}, true)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if !strings.Contains(string(got), "\n  \"tables\"") {
		t.Errorf("ToJSON(pretty) = %s, expected indented output", got)
	}
	if strings.HasSuffix(string(got), "\n") {
		t.Errorf("ToJSON(pretty) has a trailing newline")
	}
}
