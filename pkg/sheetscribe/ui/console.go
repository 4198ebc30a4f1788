// Package ui renders status messages and model responses on the terminal.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

const wordWrap = 100

// Console writes responses to out and statuses to errOut.
type Console struct {
	out         io.Writer
	errOut      *termenv.Output
	styles      statusStyles
	render      func(string) (string, error)
	interactive bool

	mu   sync.Mutex
	busy bool
}

// Option customizes a Console.
type Option func(*consoleConfig)

type consoleConfig struct {
	profile     *termenv.Profile
	render      func(string) (string, error)
	interactive *bool
}

// WithProfile forces a color profile instead of detecting one.
func WithProfile(p termenv.Profile) Option {
	return func(c *consoleConfig) { c.profile = &p }
}

// WithRenderer replaces the markdown renderer.
func WithRenderer(render func(string) (string, error)) Option {
	return func(c *consoleConfig) { c.render = render }
}

// WithInteractive overrides terminal detection for the busy indicator.
func WithInteractive(on bool) Option {
	return func(c *consoleConfig) { c.interactive = &on }
}

// NewConsole creates a Console.
func NewConsole(out, errOut io.Writer, opts ...Option) *Console {
	var cfg consoleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var outputOpts []termenv.OutputOption
	if cfg.profile != nil {
		outputOpts = append(outputOpts, termenv.WithProfile(*cfg.profile))
	}
	errOutput := termenv.NewOutput(errOut, outputOpts...)

	interactive := isTerminal(errOut)
	if cfg.interactive != nil {
		interactive = *cfg.interactive
	}

	render := cfg.render
	if render == nil {
		render = markdownRenderer()
	}

	return &Console{
		out:         out,
		errOut:      errOutput,
		styles:      newStatusStyles(lipgloss.NewRenderer(errOut, outputOpts...)),
		render:      render,
		interactive: interactive,
	}
}

// markdownRenderer renders with glamour, falling back to plain text.
func markdownRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return func(s string) (string, error) { return s, nil }
	}
	return r.Render
}

// Status prints a one-line status message.
func (c *Console) Status(kind models.StatusKind, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearBusyLocked()
	style, icon := c.styles.forKind(kind)
	fmt.Fprintln(c.errOut, style.Render(icon+" "+msg))
}

// Busy shows or clears the in-progress indicator.
func (c *Console) Busy(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.interactive {
		return
	}
	if on {
		if !c.busy {
			fmt.Fprint(c.errOut, c.styles.dim.Render("Working..."))
			c.busy = true
		}
		return
	}
	c.clearBusyLocked()
}

func (c *Console) clearBusyLocked() {
	if !c.busy {
		return
	}
	c.errOut.ClearLine()
	fmt.Fprint(c.errOut, "\r")
	c.busy = false
}

// Display prints a model response as rendered markdown.
func (c *Console) Display(text string) {
	rendered, err := c.render(text)
	if err != nil {
		rendered = text
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearBusyLocked()
	fmt.Fprint(c.out, rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Fprintln(c.out)
	}
}

// ReadSecret prompts on errOut and reads one line from in without echo when
// in is a terminal.
func (c *Console) ReadSecret(prompt string, in io.Reader) (string, error) {
	fmt.Fprint(c.errOut, prompt)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.errOut)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
