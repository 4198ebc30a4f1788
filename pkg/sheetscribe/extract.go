package sheetscribe

import (
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/parser"
)

// Extract pulls tables and suggestions out of a model response.
// It returns ErrNoTables or ErrNoSuggestions, wrapped in a ParseFailure, only
// when nothing at all was found.
func Extract(response string, opts Options) (*models.Extraction, error) {
	out := &models.Extraction{}

	if opts.ShouldIncludeTables() {
		out.Tables = parser.ExtractTables(response)
	}
	if opts.ShouldIncludeSuggestions() {
		out.Suggestions = parser.ParseSuggestions(response)
	}

	if len(out.Tables) == 0 && len(out.Suggestions) == 0 {
		err := ErrNoTables
		if opts.Mode == ModeSuggestions {
			err = ErrNoSuggestions
		}
		return out, NewParseFailure("extract", err)
	}
	return out, nil
}
