package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/willimj3/bella-document-review/internal/model"
)

// contextTruncationMarker flags a data context cut to fit the size bound.
const contextTruncationMarker = "\n\n[Data context truncated...]"

// cellSummary is the per-cell projection included in the chat context. Only
// value and confidence travel; reasoning and quotes stay out of the budget.
type cellSummary struct {
	Value      string           `json:"value"`
	Confidence model.Confidence `json:"confidence"`
}

// BuildContext projects documents, columns, and Ready results into the
// bounded text block the analyst call consumes. Scoped documents come from
// the caller (the session's selection); cells that are pending or errored are
// filtered out. scoped reports whether the document list is a selected subset,
// which adds an instruction not to reference anything else.
func BuildContext(docs []model.Document, columns []model.Column, results map[model.CellKey]model.ExtractionResult, scoped bool, maxChars int) string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}

	columnInfo := make([]string, len(columns))
	for i, c := range columns {
		columnInfo[i] = fmt.Sprintf("%s: %s", c.Name, c.Prompt)
	}

	summary := make(map[string]map[string]cellSummary, len(docs))
	for _, d := range docs {
		summary[d.Name] = make(map[string]cellSummary)
		for _, c := range columns {
			res, ok := results[model.CellKey{DocumentID: d.ID, ColumnID: c.ID}]
			if !ok || res.Status != model.StatusReady {
				continue
			}
			summary[d.Name][c.Name] = cellSummary{Value: res.Value, Confidence: res.Confidence}
		}
	}
	summaryJSON, _ := json.MarshalIndent(summary, "", "  ")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Documents: %s\n\n", strings.Join(names, ", "))
	fmt.Fprintf(&sb, "Columns and their extraction prompts:\n%s\n\n", strings.Join(columnInfo, "\n"))
	fmt.Fprintf(&sb, "Extraction Results:\n%s", summaryJSON)
	if scoped {
		fmt.Fprintf(&sb, "\n\nNote: Only analyzing the %d selected document(s). Do not reference any other documents.", len(docs))
	}

	out := sb.String()
	if maxChars > 0 && len(out) > maxChars {
		out = out[:maxChars] + contextTruncationMarker
	}
	return out
}
