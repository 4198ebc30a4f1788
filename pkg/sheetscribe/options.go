// Package sheetscribe turns language-model responses into spreadsheet content.
package sheetscribe

import "fmt"

// Mode selects what Extract looks for.
type Mode string

const (
	// ModeTables extracts fenced tables only.
	ModeTables Mode = "tables"
	// ModeSuggestions extracts column suggestions only.
	ModeSuggestions Mode = "suggestions"
	// ModeAll extracts both.
	ModeAll Mode = "all"
)

// Options configures extraction behavior.
type Options struct {
	// Mode specifies what to extract (tables, suggestions, all).
	Mode Mode
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeAll,
	}
}

// ShouldIncludeTables returns whether tables are extracted.
func (o Options) ShouldIncludeTables() bool {
	return o.Mode != ModeSuggestions
}

// ShouldIncludeSuggestions returns whether suggestions are extracted.
func (o Options) ShouldIncludeSuggestions() bool {
	return o.Mode != ModeTables
}

// ParseMode validates a mode name. The empty string selects ModeAll.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeAll, nil
	case ModeTables, ModeSuggestions, ModeAll:
		return Mode(s), nil
	}
	return "", &InvalidModeError{Mode: s}
}

// InvalidModeError reports an unknown extraction mode.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q (expected tables, suggestions or all)", e.Mode)
}
