package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol server on stdio",
	Long: `Exposes extract_tables, parse_suggestions, write_tables and
append_suggestions as MCP tools. Logs go to stderr so stdout stays JSON-RPC.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.logger.Info("starting MCP server (stdio)")
		return mcpserver.NewServer(version, a.logger).ServeStdio()
	},
}
