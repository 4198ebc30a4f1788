package models

// Extraction is the structured content pulled out of one model response.
type Extraction struct {
	// Tables holds fenced tables in document order.
	Tables []Table `json:"tables,omitempty"`
	// Suggestions holds COLUMN/FORMULA/EXPLANATION runs in document order.
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}
