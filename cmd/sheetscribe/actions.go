package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe"
)

var (
	selectionRange string
	formulaTask    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Suggest new columns for a range and append them beside it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssistant(cmd.Context(), func(a *sheetscribe.Assistant) error {
			return a.AnalyzeSelection(cmd.Context(), selectionRange)
		})
	},
}

var formulaCmd = &cobra.Command{
	Use:   "formula",
	Short: "Ask for one formula and append it as a new column",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssistant(cmd.Context(), func(a *sheetscribe.Assistant) error {
			return a.CreateFormula(cmd.Context(), selectionRange, formulaTask)
		})
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Add business-insight columns beside a range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssistant(cmd.Context(), func(a *sheetscribe.Assistant) error {
			return a.DataInsights(cmd.Context(), selectionRange)
		})
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [prompt...]",
	Short: "Send a free-form request and write the returned tables to a new sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		return withAssistant(cmd.Context(), func(a *sheetscribe.Assistant) error {
			return a.CustomRequest(cmd.Context(), prompt)
		})
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Write the last response as text into a new sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssistant(cmd.Context(), func(a *sheetscribe.Assistant) error {
			return a.InsertResults(cmd.Context())
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{analyzeCmd, formulaCmd, insightsCmd} {
		cmd.Flags().StringVarP(&selectionRange, "range", "r", "", "Selected range, e.g. Sheet1!A1:D20")
		_ = cmd.MarkFlagRequired("range")
	}
	formulaCmd.Flags().StringVarP(&formulaTask, "task", "t", "", "What the formula should calculate")
}
