package extract

import (
	"fmt"
	"strings"

	"github.com/willimj3/bella-document-review/internal/model"
)

// TruncationMarker is appended whenever a document is cut to fit the model's
// context budget, so the model knows its context may be incomplete.
const TruncationMarker = "\n\n[Document truncated...]"

// systemPrompt is the fixed extraction instruction. It mandates JSON-only
// output with the exact field set the parser expects.
const systemPrompt = `You are a legal document extraction engine. You will receive a document and a specific extraction query.

ALWAYS respond in this exact JSON format:
{
  "value": "The extracted answer (be concise)",
  "confidence": "High" | "Medium" | "Low",
  "reasoning": "Brief explanation of how you found this answer",
  "quote": "Exact verbatim text from the document supporting your answer",
  "page_number": <integer or null if not determinable>
}

Rules:
- If the information is not found, set value to "Not Found" and confidence to "Low"
- Quote must be VERBATIM text from the document
- Keep reasoning to 1-2 sentences
- For boolean questions, value must be "Yes", "No", or "Not Found"
- For currency, include the currency symbol and full amount
- For dates, use format "Month DD, YYYY"
- Do not include markdown formatting in the JSON response
- The response must be valid JSON only, no additional text`

// SystemPrompt returns the extraction system instruction.
func SystemPrompt() string {
	return systemPrompt
}

// TypeInstructions returns the per-type formatting hint appended to the user
// message. For select columns it enumerates the allowed options.
func TypeInstructions(colType model.ColumnType, options []string) string {
	switch colType {
	case model.ColumnTypeBoolean:
		return `The answer should be "Yes", "No", or "Not Found".`
	case model.ColumnTypeDate:
		return `Format dates as "Month DD, YYYY" (e.g., "January 15, 2024").`
	case model.ColumnTypeCurrency:
		return `Include currency symbol and full amount (e.g., "$45,000.00").`
	case model.ColumnTypeNumber:
		return `Include units if applicable (e.g., "90 days", "100 units").`
	case model.ColumnTypeSelect:
		if len(options) > 0 {
			return fmt.Sprintf(`The answer should be one of these options: %s. If none match exactly, choose the closest match or "Not Found".`,
				strings.Join(options, ", "))
		}
		return ""
	default:
		return "Provide a concise text answer."
	}
}

// BuildUserMessage constructs the user message for one extraction cell.
func BuildUserMessage(documentText, columnPrompt string, colType model.ColumnType, options []string) string {
	return fmt.Sprintf("Document:\n%s\n\nExtraction Query: %s\nExpected Type: %s\n%s",
		documentText, columnPrompt, colType, TypeInstructions(colType, options))
}

// TruncateDocument cuts text to maxChars and appends the truncation marker.
// The cut is a plain prefix so the policy stays deterministic.
func TruncateDocument(text string, maxChars int) (string, bool) {
	if maxChars <= 0 || len(text) <= maxChars {
		return text, false
	}
	return text[:maxChars] + TruncationMarker, true
}
