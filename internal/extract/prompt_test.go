package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/willimj3/bella-document-review/internal/model"
)

func TestTruncateDocument(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxChars  int
		truncated bool
	}{
		{"under limit", "short document", 100, false},
		{"exactly at limit", strings.Repeat("a", 50), 50, false},
		{"over limit", strings.Repeat("a", 51), 50, true},
		{"zero limit disables", strings.Repeat("a", 500), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, truncated := TruncateDocument(tt.text, tt.maxChars)
			assert.Equal(t, tt.truncated, truncated)
			if truncated {
				assert.True(t, strings.HasSuffix(out, TruncationMarker))
				assert.Equal(t, tt.maxChars+len(TruncationMarker), len(out))
			} else {
				assert.Equal(t, tt.text, out)
			}
		})
	}
}

func TestTruncateDocument_Deterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum ", 1000)
	first, _ := TruncateDocument(text, 500)
	second, _ := TruncateDocument(text, 500)
	assert.Equal(t, first, second)
}

func TestTypeInstructions(t *testing.T) {
	tests := []struct {
		name    string
		colType model.ColumnType
		options []string
		contain string
	}{
		{"boolean", model.ColumnTypeBoolean, nil, `"Yes", "No", or "Not Found"`},
		{"date", model.ColumnTypeDate, nil, "Month DD, YYYY"},
		{"currency", model.ColumnTypeCurrency, nil, "currency symbol"},
		{"number", model.ColumnTypeNumber, nil, "units if applicable"},
		{"text", model.ColumnTypeText, nil, "concise text answer"},
		{"select with options", model.ColumnTypeSelect, []string{"NY", "DE", "CA"}, "NY, DE, CA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, TypeInstructions(tt.colType, tt.options), tt.contain)
		})
	}
}

func TestTypeInstructions_SelectWithoutOptions(t *testing.T) {
	assert.Empty(t, TypeInstructions(model.ColumnTypeSelect, nil))
}

func TestBuildUserMessage(t *testing.T) {
	msg := BuildUserMessage("the document body", "What is the governing law?", model.ColumnTypeText, nil)

	assert.Contains(t, msg, "Document:\nthe document body")
	assert.Contains(t, msg, "Extraction Query: What is the governing law?")
	assert.Contains(t, msg, "Expected Type: text")
	assert.Contains(t, msg, "concise text answer")
}

func TestSystemPrompt_MandatesJSONShape(t *testing.T) {
	p := SystemPrompt()
	for _, field := range []string{`"value"`, `"confidence"`, `"reasoning"`, `"quote"`, `"page_number"`} {
		assert.Contains(t, p, field)
	}
	assert.Contains(t, p, "Not Found")
}
