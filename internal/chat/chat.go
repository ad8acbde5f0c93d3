// Package chat answers natural-language questions over the aggregated
// extraction grid. It projects the result store into a bounded data context
// and sends it, with prior turns, to the completion backend. Chat calls carry
// no retry policy: a failure is surfaced directly to the user.
package chat

import (
	"context"
	"fmt"

	"github.com/willimj3/bella-document-review/internal/config"
	"github.com/willimj3/bella-document-review/internal/model"
	"github.com/willimj3/bella-document-review/pkg/anthropic"
)

// systemPrompt frames the assistant as an analyst over the extraction table.
const systemPrompt = `You are a legal analyst assistant with access to a structured extraction table from document review.

When answering questions:
1. Reference specific documents by name
2. Cite the specific extracted values you're using
3. For aggregations, show your calculation
4. Flag any low-confidence extractions that affect your answer
5. If asked about something not in the data, say so clearly
6. Be concise but thorough
7. Use bullet points for clarity when appropriate`

// Analyst sends chat turns to the completion backend.
type Analyst struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnalyst creates a chat analyst.
func NewAnalyst(client anthropic.Client, modelID string, cfg config.ChatConfig) *Analyst {
	return &Analyst{
		client:    client,
		model:     modelID,
		maxTokens: int64(cfg.MaxTokens),
	}
}

// Ask sends one user question with the data context and prior turns and
// returns the assistant's reply.
func (a *Analyst) Ask(ctx context.Context, message, dataContext string, history []model.ChatMessage) (string, error) {
	msgs := make([]anthropic.Message, 0, len(history)+1)
	for _, m := range history {
		msgs = append(msgs, anthropic.Message{Role: string(m.Role), Content: m.Content})
	}
	msgs = append(msgs, anthropic.Message{
		Role:    "user",
		Content: fmt.Sprintf("Data Context:\n%s\n\nUser Question: %s", dataContext, message),
	})

	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		System:    systemPrompt,
		Messages:  msgs,
	})
	if err != nil {
		return "", err
	}

	resp.Usage.LogUsage(a.model, "chat")
	return resp.Text(), nil
}
