// Package output serializes extraction results.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/ukaji3/sheetscribe-go/pkg/sheetscribe/models"
)

// ToJSON serializes an extraction. HTML characters are not escaped so
// formulas such as =A1<B1 stay readable.
func ToJSON(ex *models.Extraction, pretty bool) ([]byte, error) {
	return marshal(ex, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
