// Package mcpserver exposes table extraction and workbook writes as MCP tools.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/ukaji3/sheetscribe-go/internal/logging"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/grid"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/layout"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/parser"
)

const serverName = "sheetscribe-mcp"

// ExtractResult is returned by the read-only tools.
type ExtractResult struct {
	Tables      []models.Table      `json:"tables,omitempty" jsonschema_description:"Fenced tables in document order"`
	Suggestions []models.Suggestion `json:"suggestions,omitempty" jsonschema_description:"Column suggestions in document order"`
}

// WriteResult is returned by the tools that modify a workbook.
type WriteResult struct {
	Path    string `json:"path" jsonschema_description:"Workbook that was written"`
	Sheet   string `json:"sheet" jsonschema_description:"Sheet that received the content"`
	Batches int    `json:"batches" jsonschema_description:"Number of write batches applied"`
	Writes  int    `json:"writes" jsonschema_description:"Number of cell writes applied"`
}

type textArgs struct {
	Text string `mapstructure:"text"`
}

type writeTablesArgs struct {
	Path  string `mapstructure:"path"`
	Text  string `mapstructure:"text"`
	Sheet string `mapstructure:"sheet"`
}

type appendSuggestionsArgs struct {
	Path  string `mapstructure:"path"`
	Range string `mapstructure:"range"`
	Text  string `mapstructure:"text"`
}

// Server wraps an MCP server with the sheetscribe tools registered.
type Server struct {
	mcpServer *server.MCPServer
	logger    *slog.Logger
	now       func() time.Time
}

// NewServer creates a Server.
func NewServer(version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		mcpServer: server.NewMCPServer(serverName, version),
		logger:    logger,
		now:       time.Now,
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("extract_tables",
		mcp.WithDescription("Extract the tables inside ``` fences of a model response, with titles and typed cells."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Model response text")),
		mcp.WithOutputSchema[ExtractResult](),
	), mcp.NewStructuredToolHandler(s.handleExtractTables))

	s.mcpServer.AddTool(mcp.NewTool("parse_suggestions",
		mcp.WithDescription("Parse COLUMN:/FORMULA:/EXPLANATION: suggestions from a model response."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Model response text")),
		mcp.WithOutputSchema[ExtractResult](),
	), mcp.NewStructuredToolHandler(s.handleParseSuggestions))

	s.mcpServer.AddTool(mcp.NewTool("write_tables",
		mcp.WithDescription("Write the fenced tables of a model response into an .xlsx workbook."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Workbook path; created when missing")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Model response text")),
		mcp.WithString("sheet", mcp.Description("Target sheet; a new timestamped sheet when omitted")),
		mcp.WithOutputSchema[WriteResult](),
	), mcp.NewStructuredToolHandler(s.handleWriteTables))

	s.mcpServer.AddTool(mcp.NewTool("append_suggestions",
		mcp.WithDescription("Append suggested columns to the right of a range, filling formulas down."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Workbook path")),
		mcp.WithString("range", mcp.Required(), mcp.Description("Anchor range such as Sheet1!A1:C10")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Model response text")),
		mcp.WithOutputSchema[WriteResult](),
	), mcp.NewStructuredToolHandler(s.handleAppendSuggestions))
}

func decodeArgs(args map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

func (s *Server) handleExtractTables(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExtractResult, error) {
	var in textArgs
	if err := decodeArgs(args, &in); err != nil {
		return ExtractResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	got, err := sheetscribe.Extract(in.Text, sheetscribe.Options{Mode: sheetscribe.ModeTables})
	if err != nil {
		return ExtractResult{}, err
	}
	return ExtractResult{Tables: got.Tables}, nil
}

func (s *Server) handleParseSuggestions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExtractResult, error) {
	var in textArgs
	if err := decodeArgs(args, &in); err != nil {
		return ExtractResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	got, err := sheetscribe.Extract(in.Text, sheetscribe.Options{Mode: sheetscribe.ModeSuggestions})
	if err != nil {
		return ExtractResult{}, err
	}
	return ExtractResult{Suggestions: got.Suggestions}, nil
}

func (s *Server) handleWriteTables(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (WriteResult, error) {
	var in writeTablesArgs
	if err := decodeArgs(args, &in); err != nil {
		return WriteResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if in.Path == "" {
		return WriteResult{}, errors.New("path is required")
	}

	tables := parser.ExtractTables(in.Text)
	if len(tables) == 0 {
		return WriteResult{}, sheetscribe.ErrNoTables
	}

	wb, err := grid.Open(in.Path)
	if err != nil {
		return WriteResult{}, err
	}
	defer wb.Close()

	sheet := in.Sheet
	switch {
	case sheet == "":
		sheet, err = wb.AddSheet(sheetscribe.SheetName(s.now()))
	case !wb.HasSheet(sheet):
		sheet, err = wb.AddSheet(sheet)
	}
	if err != nil {
		return WriteResult{}, err
	}

	batches := layout.PlanTables(tables)
	if err := layout.NewWriter(wb, s.logger).Write(sheet, batches); err != nil {
		return WriteResult{}, err
	}
	s.logger.Info("tables written", "path", in.Path, "sheet", sheet, "tables", len(tables))
	return WriteResult{Path: in.Path, Sheet: sheet, Batches: len(batches), Writes: countWrites(batches)}, nil
}

func (s *Server) handleAppendSuggestions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (WriteResult, error) {
	var in appendSuggestionsArgs
	if err := decodeArgs(args, &in); err != nil {
		return WriteResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if in.Path == "" || in.Range == "" {
		return WriteResult{}, errors.New("path and range are required")
	}

	suggestions := parser.ParseSuggestions(in.Text)
	if len(suggestions) == 0 {
		return WriteResult{}, sheetscribe.ErrNoSuggestions
	}

	wb, err := grid.Open(in.Path)
	if err != nil {
		return WriteResult{}, err
	}
	defer wb.Close()

	sel, err := wb.Selection(in.Range)
	if err != nil {
		return WriteResult{}, err
	}

	batch := layout.PlanSuggestions(sel, suggestions)
	if err := layout.NewWriter(wb, s.logger).Write(sel.Sheet, []models.Batch{batch}); err != nil {
		return WriteResult{}, err
	}
	s.logger.Info("suggestions appended", "path", in.Path, "sheet", sel.Sheet, "writes", len(batch.Writes))
	return WriteResult{Path: in.Path, Sheet: sel.Sheet, Batches: 1, Writes: len(batch.Writes)}, nil
}

func countWrites(batches []models.Batch) int {
	n := 0
	for _, b := range batches {
		n += len(b.Writes)
	}
	return n
}
