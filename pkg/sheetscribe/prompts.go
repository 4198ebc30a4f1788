package sheetscribe

import "fmt"

const analyzePrompt = `Analyze this Excel data and suggest NEW COLUMNS or CALCULATIONS to add:

Data:
%s

Please suggest 2-3 new columns. For each suggestion, provide:
COLUMN: [Header Name]
FORMULA: [Excel formula]
EXPLANATION: [Why this is useful]`

const formulaPrompt = `Create Excel formula for this task: %s

Data:
%s

Provide:
FORMULA: [Excel formula starting with =]
HEADER: [Column header name]`

const insightsPrompt = `Analyze this data and create calculated columns:

%s

Create 2-3 columns with:
COLUMN: [Column Name]
FORMULA: [Excel formula]
EXPLANATION: [Business insight]`

// AnalyzePrompt asks for column suggestions over dataText.
func AnalyzePrompt(dataText string) string {
	return fmt.Sprintf(analyzePrompt, dataText)
}

// FormulaPrompt asks for a single formula solving task.
func FormulaPrompt(task, dataText string) string {
	return fmt.Sprintf(formulaPrompt, task, dataText)
}

// InsightsPrompt asks for business-insight columns.
func InsightsPrompt(dataText string) string {
	return fmt.Sprintf(insightsPrompt, dataText)
}
