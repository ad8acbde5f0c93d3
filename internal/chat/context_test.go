package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willimj3/bella-document-review/internal/model"
)

func gridFixture() ([]model.Document, []model.Column, map[model.CellKey]model.ExtractionResult) {
	docs := []model.Document{
		{ID: "d1", Name: "lease.pdf"},
		{ID: "d2", Name: "nda.pdf"},
	}
	cols := []model.Column{
		{ID: "c1", Name: "Term", Prompt: "What is the term?"},
		{ID: "c2", Name: "Rent", Prompt: "What is the rent?"},
	}
	results := map[model.CellKey]model.ExtractionResult{
		{DocumentID: "d1", ColumnID: "c1"}: {Status: model.StatusReady, Value: "5 years", Confidence: model.ConfidenceHigh},
		{DocumentID: "d1", ColumnID: "c2"}: model.PendingResult(),
		{DocumentID: "d2", ColumnID: "c1"}: model.ErrorResult("rate limited"),
		{DocumentID: "d2", ColumnID: "c2"}: {Status: model.StatusReady, Value: "$2,000", Confidence: model.ConfidenceMedium},
	}
	return docs, cols, results
}

func TestBuildContext_IncludesDocumentsColumnsAndResults(t *testing.T) {
	docs, cols, results := gridFixture()

	out := BuildContext(docs, cols, results, false, 0)

	assert.Contains(t, out, "Documents: lease.pdf, nda.pdf")
	assert.Contains(t, out, "Term: What is the term?")
	assert.Contains(t, out, "Rent: What is the rent?")
	assert.Contains(t, out, "5 years")
	assert.Contains(t, out, "$2,000")
}

func TestBuildContext_FiltersPendingAndErroredCells(t *testing.T) {
	docs, cols, results := gridFixture()

	out := BuildContext(docs, cols, results, false, 0)

	assert.NotContains(t, out, model.SentinelLoading)
	assert.NotContains(t, out, model.SentinelError)
	assert.NotContains(t, out, "rate limited")
}

func TestBuildContext_ScopedNote(t *testing.T) {
	docs, cols, results := gridFixture()

	unscoped := BuildContext(docs, cols, results, false, 0)
	assert.NotContains(t, unscoped, "selected document")

	scoped := BuildContext(docs[:1], cols, results, true, 0)
	assert.Contains(t, scoped, "Only analyzing the 1 selected document(s)")
	assert.NotContains(t, scoped, "nda.pdf")
}

func TestBuildContext_Truncation(t *testing.T) {
	docs := []model.Document{{ID: "d1", Name: strings.Repeat("long-name-", 100)}}
	cols := []model.Column{{ID: "c1", Name: "Term", Prompt: "What is the term?"}}

	out := BuildContext(docs, cols, nil, false, 200)
	require.True(t, strings.HasSuffix(out, contextTruncationMarker))
	assert.Equal(t, 200+len(contextTruncationMarker), len(out))
}
