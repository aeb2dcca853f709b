// Package entity defines the JSON bodies exchanged with the panel's browser code.
package entity

// Msg is the envelope of every JSON API response.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// SizingReport carries header widths measured in the browser, keyed by column id.
type SizingReport struct {
	Widths map[string]float64 `json:"widths" binding:"required"`
}

type ColumnStyle struct {
	ID    string `json:"id"`
	Style string `json:"style"`
}

// SizingResult tells the browser whether the sizing state changed and, if it
// did, the recomputed style of every column.
type SizingResult struct {
	Changed bool          `json:"changed"`
	Columns []ColumnStyle `json:"columns"`
}
