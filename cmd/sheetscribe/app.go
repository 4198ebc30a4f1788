package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ukaji3/sheetscribe-go/internal/logging"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/grid"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/store"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/ui"
)

// app holds what every command needs after configuration is loaded.
type app struct {
	cfg    sheetscribe.Config
	logger *slog.Logger
	store  store.Store
}

func loadApp() (*app, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = sheetscribe.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := sheetscribe.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logging.New(level)
	logger.Debug("config loaded", "path", path, "store", cfg.Store.Kind)
	return &app{cfg: cfg, logger: logger, store: cfg.OpenStore()}, nil
}

func (a *app) Close() {
	if c, ok := a.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("closing store", "error", err)
		}
	}
}

func (a *app) console() *ui.Console {
	return ui.NewConsole(os.Stdout, os.Stderr)
}

// assistant opens the workbook and builds an Assistant bound to it.
func (a *app) assistant(ctx context.Context) (*sheetscribe.Assistant, *grid.Workbook, error) {
	if workbookPath == "" {
		return nil, nil, errors.New("--workbook is required")
	}

	key, err := sheetscribe.ResolveAPIKey(ctx, a.store)
	if err != nil {
		return nil, nil, err
	}

	book, err := grid.Open(workbookPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}

	asst := sheetscribe.NewAssistant(
		a.cfg.NewCaller(key),
		book,
		a.console(),
		a.store,
		sheetscribe.WithLogger(a.logger),
	)
	return asst, book, nil
}

// withAssistant runs fn against a freshly opened workbook and closes it.
func withAssistant(ctx context.Context, fn func(*sheetscribe.Assistant) error) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	asst, book, err := a.assistant(ctx)
	if err != nil {
		return err
	}
	defer book.Close()

	return fn(asst)
}
