package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/output"
)

var (
	outputPath  string
	pretty      bool
	extractMode string
)

var extractCmd = &cobra.Command{
	Use:   "extract [response.txt]",
	Short: "Print the tables and suggestions found in a model response as JSON",
	Long: `Reads a model response from a file, or from stdin when no file is
given or the file is "-", and prints what would be written to a workbook.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	extractCmd.Flags().StringVar(&extractMode, "mode", "all", "What to extract: tables, suggestions, all")
}

func runExtract(cmd *cobra.Command, args []string) error {
	mode, err := sheetscribe.ParseMode(extractMode)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("file not found: %s", args[0])
		}
		defer f.Close()
		in = f
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	ex, err := sheetscribe.Extract(string(text), sheetscribe.Options{Mode: mode})
	if err != nil {
		return err
	}

	jsonData, err := output.ToJSON(ex, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
