package parser

import (
	"math"
	"testing"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input   string
		kind    models.ValueKind
		display string
		value   float64
	}{
		{"", models.KindText, "", 0},
		{"   ", models.KindText, "", 0},
		{"-", models.KindText, EmDash, 0},
		{"+", models.KindText, FullWidthPlus, 0},
		{" - ", models.KindText, EmDash, 0},
		{"-42", models.KindNumber, "-42", -42},
		{"-3.5", models.KindNumber, "-3.5", -3.5},
		{"-.5", models.KindNumber, "-.5", -0.5},
		{"+1,200", models.KindNumber, "+1,200", 1200},
		{"-Not applicable", models.KindText, EmDash + "Not applicable", 0},
		{"+ growth", models.KindText, FullWidthPlus + " growth", 0},
		{"1,000", models.KindNumber, "1,000", 1000},
		{"$2,500.75", models.KindNumber, "$2,500.75", 2500.75},
		{"(300)", models.KindNumber, "(300)", 300},
		{"45%", models.KindPercentage, "45%", 0.45},
		{"-12.5%", models.KindPercentage, "-12.5%", -0.125},
		{"Revenue", models.KindText, "Revenue", 0},
		{"2023 Q1", models.KindText, "2023 Q1", 0},
		{"Inf", models.KindText, "Inf", 0},
		{"NaN", models.KindText, "NaN", 0},
		{"1e400", models.KindText, "1e400", 0},
		{"  Year  ", models.KindText, "Year", 0},
	}

	for _, tt := range tests {
		result := Classify(tt.input)
		if result.Kind != tt.kind {
			t.Errorf("Classify(%q).Kind = %q, expected %q", tt.input, result.Kind, tt.kind)
		}
		if result.Display != tt.display {
			t.Errorf("Classify(%q).Display = %q, expected %q", tt.input, result.Display, tt.display)
		}
		if math.Abs(result.Value-tt.value) > 1e-9 {
			t.Errorf("Classify(%q).Value = %v, expected %v", tt.input, result.Value, tt.value)
		}
	}
}

func TestClassifyNeverPassesBareSign(t *testing.T) {
	for _, input := range []string{"-", "+", "-abc", "+abc", "- 5 apples"} {
		result := Classify(input)
		if result.Kind != models.KindText {
			t.Errorf("Classify(%q).Kind = %q, expected text", input, result.Kind)
			continue
		}
		if result.Display[0] == '-' || result.Display[0] == '+' {
			t.Errorf("Classify(%q).Display = %q, leading sign not escaped", input, result.Display)
		}
	}
}

func TestClassifyKeepsRaw(t *testing.T) {
	result := Classify("  -Total  ")
	if result.Raw != "-Total" {
		t.Errorf("Raw = %q, expected %q", result.Raw, "-Total")
	}
}
