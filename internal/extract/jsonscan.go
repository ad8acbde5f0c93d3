package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/willimj3/bella-document-review/internal/model"
)

// ParseError reports that the model produced malformed or missing JSON.
// Often transient model noise, so the scheduler's outer retry budget
// absorbs it before the cell is marked failed.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "extract: parse response: " + e.Msg
}

// ValidationError reports missing required input fields. A client bug; never
// retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "extract: " + e.Msg
}

// resultSchema validates the shape of the model's JSON answer before
// defaulting fills the gaps. Every field is optional; wrong types are
// rejected rather than coerced.
var resultSchema = jsonschema.MustCompileString("extraction-result.json", `{
	"type": "object",
	"properties": {
		"value": {"type": ["string", "number", "boolean", "null"]},
		"confidence": {"type": ["string", "null"]},
		"reasoning": {"type": ["string", "null"]},
		"quote": {"type": ["string", "null"]},
		"page_number": {"type": ["number", "null"]}
	}
}`)

// ParseExtractionResponse locates the first complete JSON object in the raw
// model output, validates it, and assembles an ExtractionResult with safe
// defaults for absent fields. The model is instructed to return bare JSON but
// routinely wraps it in prose or code fences, so the response is treated as
// untrusted text.
func ParseExtractionResponse(raw string) (model.ExtractionResult, error) {
	obj, err := firstJSONObject(raw)
	if err != nil {
		return model.ExtractionResult{}, err
	}

	var fields map[string]any
	if jsonErr := json.Unmarshal([]byte(obj), &fields); jsonErr != nil {
		return model.ExtractionResult{}, &ParseError{Msg: jsonErr.Error()}
	}

	if schemaErr := resultSchema.Validate(fields); schemaErr != nil {
		return model.ExtractionResult{}, &ParseError{Msg: schemaErr.Error()}
	}

	res := model.ExtractionResult{
		Status:     model.StatusReady,
		Value:      stringField(fields["value"], "Not Found"),
		Confidence: confidenceField(fields["confidence"]),
		Reasoning:  stringField(fields["reasoning"], ""),
		Quote:      stringField(fields["quote"], ""),
		PageNumber: pageField(fields["page_number"]),
	}
	return res, nil
}

// firstJSONObject scans text for the first balanced, parseable {...} object.
// The scanner is string- and escape-aware so braces inside JSON strings do
// not unbalance it; a balanced run that is not valid JSON (braces in prose)
// is skipped and the scan continues from the next opening brace.
func firstJSONObject(text string) (string, error) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}

		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(text); i++ {
			c := text[i]
			switch {
			case escaped:
				escaped = false
			case c == '\\' && inString:
				escaped = true
			case c == '"':
				inString = !inString
			case inString:
				// Braces inside strings don't count.
			case c == '{':
				depth++
			case c == '}':
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, nil
					}
					// Balanced but not JSON; abandon this candidate and
					// rescan from the next opening brace.
					i = len(text)
				}
			}
		}
	}
	return "", &ParseError{Msg: fmt.Sprintf("no JSON object found in response (%d chars)", len(text))}
}

func stringField(v any, fallback string) string {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return fallback
		}
		return val
	case nil:
		return fallback
	default:
		// Numbers and booleans are legal answers; render them.
		return fmt.Sprint(val)
	}
}

func confidenceField(v any) model.Confidence {
	s, ok := v.(string)
	if !ok {
		return model.ConfidenceLow
	}
	c := model.Confidence(s)
	if !model.ValidConfidence(c) {
		return model.ConfidenceLow
	}
	return c
}

func pageField(v any) *int {
	f, ok := v.(float64)
	if !ok || math.Trunc(f) != f {
		return nil
	}
	n := int(f)
	if n <= 0 {
		return nil
	}
	return &n
}
