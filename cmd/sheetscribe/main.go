// Package main provides the CLI entry point for sheetscribe.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe"
)

var version = "dev"

var (
	configPath   string
	logLevel     string
	workbookPath string
)

var rootCmd = &cobra.Command{
	Use:   "sheetscribe",
	Short: "Apply language-model answers to Excel workbooks",
	Long: `sheetscribe sends spreadsheet data to a language model and writes the
answer back: suggested columns beside a selection, or fenced tables on a
new sheet.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/sheetscribe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&workbookPath, "workbook", "w", "", "Workbook (.xlsx) to read from and write to")

	rootCmd.AddCommand(analyzeCmd, formulaCmd, insightsCmd, askCmd, insertCmd)
	rootCmd.AddCommand(keyCmd, relayCmd, mcpCmd, extractCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Action errors were already reported as a status line.
		var actionErr *sheetscribe.ActionError
		if !errors.As(err, &actionErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
