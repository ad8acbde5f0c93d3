package model

import "time"

// CellStatus tags an ExtractionResult as in-flight, failed, or a real answer.
// Earlier wire formats encoded these states as reserved strings in the value
// field; the tagged status replaces those sentinel comparisons, and the legacy
// markers survive only as wire-level constants.
type CellStatus string

const (
	StatusPending CellStatus = "pending"
	StatusError   CellStatus = "error"
	StatusReady   CellStatus = "ready"
)

// Legacy sentinel strings used by the reference wire format. Never persisted
// as final answers; filtered from every export and chat-context projection.
const (
	SentinelLoading = "__loading__"
	SentinelError   = "__error__"
)

// Confidence is the model's coarse self-reported reliability label.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ValidConfidence reports whether c is one of the three recognized labels.
func ValidConfidence(c Confidence) bool {
	return c == ConfidenceHigh || c == ConfidenceMedium || c == ConfidenceLow
}

// ExtractionResult is the atomic unit of extraction output for one
// (document, column) cell. Exactly one result (or none) exists per cell.
type ExtractionResult struct {
	Status           CellStatus `json:"status"`
	Value            string     `json:"value"`
	Confidence       Confidence `json:"confidence"`
	Reasoning        string     `json:"reasoning"`
	Quote            string     `json:"quote"`
	PageNumber       *int       `json:"page_number"`
	IsManuallyEdited bool       `json:"is_manually_edited"`
	IsReviewed       bool       `json:"is_reviewed"`
	EditedAt         *time.Time `json:"edited_at,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	OriginalValue    *string    `json:"original_value,omitempty"`
}

// PendingResult returns the in-flight placeholder written before a cell's
// extraction request is issued.
func PendingResult() ExtractionResult {
	return ExtractionResult{
		Status:     StatusPending,
		Value:      SentinelLoading,
		Confidence: ConfidenceLow,
	}
}

// ErrorResult returns the terminal failure result for a cell, carrying the
// failure description in the reasoning field.
func ErrorResult(msg string) ExtractionResult {
	return ExtractionResult{
		Status:     StatusError,
		Value:      SentinelError,
		Confidence: ConfidenceLow,
		Reasoning:  msg,
	}
}

// ResultPatch is a partial update merged into an existing result by manual
// edit and review actions. Nil fields are left untouched.
type ResultPatch struct {
	Value      *string
	Confidence *Confidence
	Reasoning  *string
	Quote      *string
	PageNumber *int
	IsReviewed *bool
}
