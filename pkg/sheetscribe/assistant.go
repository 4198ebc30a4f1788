package sheetscribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ukaji3/sheetscribe-go/internal/logging"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/layout"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/llm"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/parser"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/store"
)

// SheetPrefix starts the name of every sheet the assistant creates.
const SheetPrefix = "Claude_"

const sheetStampLayout = "20060102T1504"

// SheetName names a sheet created at t: SheetPrefix plus a UTC minute stamp.
func SheetName(t time.Time) string {
	return SheetPrefix + t.UTC().Format(sheetStampLayout)
}

// Action names used in logs and errors.
const (
	ActionAnalyze  = "analyze"
	ActionFormula  = "formula"
	ActionInsights = "insights"
	ActionAsk      = "ask"
	ActionInsert   = "insert"
)

// Workbook is the grid the assistant reads selections from and writes to.
type Workbook interface {
	layout.Grid
	Selection(ref string) (models.Selection, error)
	AddSheet(base string) (string, error)
}

// UI shows progress and results to the user.
type UI interface {
	Status(kind models.StatusKind, msg string)
	Busy(on bool)
	Display(text string)
}

// ResponseStore keeps the most recent model response.
type ResponseStore interface {
	LastResponse(ctx context.Context) (string, error)
	SetLastResponse(ctx context.Context, text string) error
}

// Assistant runs the user-facing actions. Each action shows a busy
// indicator, calls the model at most once, applies the result to the
// workbook and reports exactly one status.
type Assistant struct {
	model  llm.Caller
	book   Workbook
	ui     UI
	store  ResponseStore
	logger *slog.Logger
	now    func() time.Time
}

// AssistantOption customizes an Assistant.
type AssistantOption func(*Assistant)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithClock replaces the clock used for sheet names.
func WithClock(now func() time.Time) AssistantOption {
	return func(a *Assistant) {
		a.now = now
	}
}

// NewAssistant creates an Assistant.
func NewAssistant(model llm.Caller, book Workbook, ui UI, st ResponseStore, opts ...AssistantOption) *Assistant {
	a := &Assistant{
		model:  model,
		book:   book,
		ui:     ui,
		store:  st,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeSelection asks for new columns derived from the selected range and
// appends them to its right.
func (a *Assistant) AnalyzeSelection(ctx context.Context, ref string) error {
	return a.run(ctx, ActionAnalyze, func(ctx context.Context) (string, error) {
		return a.suggestColumns(ctx, ActionAnalyze, ref, AnalyzePrompt, "Analysis applied to spreadsheet!")
	})
}

// DataInsights is AnalyzeSelection with a business-insight prompt.
func (a *Assistant) DataInsights(ctx context.Context, ref string) error {
	return a.run(ctx, ActionInsights, func(ctx context.Context) (string, error) {
		return a.suggestColumns(ctx, ActionInsights, ref, InsightsPrompt, "Insights added as new columns!")
	})
}

func (a *Assistant) suggestColumns(ctx context.Context, action, ref string, prompt func(string) string, done string) (string, error) {
	sel, err := a.selection(ref)
	if err != nil {
		return "", err
	}
	if sel.IsSingleCell() {
		return "", ErrSelectionTooSmall
	}

	reply, err := a.ask(ctx, prompt(parser.SelectionToText(sel.Values)))
	if err != nil {
		return "", err
	}

	suggestions := parser.ParseSuggestions(reply)
	a.logger.Debug("suggestions parsed", "count", len(suggestions))
	if len(suggestions) == 0 {
		return "", NewParseFailure(action, ErrNoSuggestions)
	}
	if err := a.writer().Write(sel.Sheet, []models.Batch{layout.PlanSuggestions(sel, suggestions)}); err != nil {
		return "", err
	}
	return done, nil
}

// CreateFormula asks for one formula solving task over the selection and
// appends it as a new column. An empty task does nothing.
func (a *Assistant) CreateFormula(ctx context.Context, ref, task string) error {
	task = strings.TrimSpace(task)
	if task == "" {
		return nil
	}
	return a.run(ctx, ActionFormula, func(ctx context.Context) (string, error) {
		sel, err := a.selection(ref)
		if err != nil {
			return "", err
		}

		reply, err := a.ask(ctx, FormulaPrompt(task, parser.SelectionToText(sel.Values)))
		if err != nil {
			return "", err
		}

		suggestion, ok := parser.ParseFormulaReply(reply)
		if !ok {
			return "", NewParseFailure(ActionFormula, ErrNoFormula)
		}
		batch := layout.PlanSuggestions(sel, []models.Suggestion{suggestion})
		if err := a.writer().Write(sel.Sheet, []models.Batch{batch}); err != nil {
			return "", err
		}
		return "Formula applied to spreadsheet!", nil
	})
}

// CustomRequest sends prompt as-is and writes every fenced table in the reply
// to a new sheet.
func (a *Assistant) CustomRequest(ctx context.Context, prompt string) error {
	return a.run(ctx, ActionAsk, func(ctx context.Context) (string, error) {
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			return "", ErrEmptyRequest
		}

		reply, err := a.ask(ctx, prompt)
		if err != nil {
			return "", err
		}

		tables := parser.ExtractTables(reply)
		a.logger.Debug("tables extracted", "count", len(tables))
		if len(tables) == 0 {
			return "", NewParseFailure(ActionAsk, ErrNoTables)
		}

		sheet, err := a.book.AddSheet(a.sheetName())
		if err != nil {
			return "", fmt.Errorf("create sheet: %w", err)
		}
		if err := a.writer().Write(sheet, layout.PlanTables(tables)); err != nil {
			return "", err
		}
		return "Request completed and applied to Excel!", nil
	})
}

// InsertResults writes the last response, unparsed, into A1 of a new sheet.
func (a *Assistant) InsertResults(ctx context.Context) error {
	return a.run(ctx, ActionInsert, func(ctx context.Context) (string, error) {
		text, err := a.store.LastResponse(ctx)
		if errors.Is(err, store.ErrNotFound) || (err == nil && text == "") {
			return "", ErrNoResults
		}
		if err != nil {
			return "", fmt.Errorf("load last response: %w", err)
		}

		sheet, err := a.book.AddSheet(a.sheetName())
		if err != nil {
			return "", fmt.Errorf("create sheet: %w", err)
		}
		if err := a.writer().Write(sheet, []models.Batch{layout.PlanResponseText(text)}); err != nil {
			return "", err
		}
		return "Results inserted in new sheet!", nil
	})
}

// run is the single boundary every action goes through.
func (a *Assistant) run(ctx context.Context, action string, fn func(context.Context) (string, error)) error {
	a.ui.Busy(true)
	defer a.ui.Busy(false)

	msg, err := fn(ctx)
	if err == nil {
		a.logger.Info("action completed", "action", action)
		a.ui.Status(models.StatusSuccess, msg)
		return nil
	}

	var parseFailure *ParseFailure
	switch {
	case errors.As(err, &parseFailure):
		a.logger.Info("nothing to apply", "action", action, "reason", parseFailure.Error())
		a.ui.Status(models.StatusInfo, parseFailure.Error())
		return nil
	case isGuard(err):
		a.ui.Status(models.StatusError, err.Error())
	default:
		a.logger.Error("action failed", "action", action, "error", err)
		a.ui.Status(models.StatusError, "Error: "+err.Error())
	}
	return &ActionError{Action: action, Err: err}
}

// ask calls the model, keeps the reply as the last response and shows it.
func (a *Assistant) ask(ctx context.Context, prompt string) (string, error) {
	reply, err := a.model.Call(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := a.store.SetLastResponse(ctx, reply); err != nil {
		a.logger.Warn("last response not saved", "error", err)
	}
	a.ui.Display(reply)
	return reply, nil
}

func (a *Assistant) selection(ref string) (models.Selection, error) {
	sel, err := a.book.Selection(ref)
	if err != nil {
		return sel, fmt.Errorf("read selection: %w", err)
	}
	return sel, nil
}

func (a *Assistant) writer() *layout.Writer {
	return layout.NewWriter(a.book, a.logger)
}

func (a *Assistant) sheetName() string {
	return SheetName(a.now())
}
