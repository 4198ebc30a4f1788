package sheetscribe

import (
	"errors"
	"fmt"
)

// ErrNoTables indicates a response had no fenced table with rows.
var ErrNoTables = errors.New("No code block tables found in response")

// ErrNoSuggestions indicates a response had no COLUMN run.
var ErrNoSuggestions = errors.New("No actionable columns found in response")

// ErrNoFormula indicates a formula reply had no FORMULA line.
var ErrNoFormula = errors.New("No formula found in response")

// ErrSelectionTooSmall indicates the selection is a single cell.
var ErrSelectionTooSmall = errors.New("Please select a larger data range")

// ErrEmptyRequest indicates a custom request with no text.
var ErrEmptyRequest = errors.New("Please enter a request")

// ErrNoResults indicates there is no stored response to insert.
var ErrNoResults = errors.New("No results to insert")

// ParseFailure reports that a response had nothing applicable.
// It is informational: the response itself is still kept and displayed.
type ParseFailure struct {
	Action string
	Err    error
}

func (e *ParseFailure) Error() string {
	return e.Err.Error()
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}

// NewParseFailure creates a new ParseFailure.
func NewParseFailure(action string, err error) *ParseFailure {
	return &ParseFailure{
		Action: action,
		Err:    err,
	}
}

// ActionError wraps a failure with the action it interrupted.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// isGuard reports whether err is a precondition message shown as-is.
func isGuard(err error) bool {
	for _, guard := range []error{ErrSelectionTooSmall, ErrEmptyRequest, ErrNoResults} {
		if errors.Is(err, guard) {
			return true
		}
	}
	return false
}
