package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willimj3/bella-document-review/internal/config"
	"github.com/willimj3/bella-document-review/internal/model"
	"github.com/willimj3/bella-document-review/pkg/anthropic"
)

// mockAnthropicClient implements anthropic.Client for testing.
type mockAnthropicClient struct {
	lastReq  anthropic.MessageRequest
	response *anthropic.MessageResponse
	err      error
}

func (m *mockAnthropicClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func TestAsk_BuildsConversation(t *testing.T) {
	ai := &mockAnthropicClient{
		response: &anthropic.MessageResponse{
			Content: []anthropic.ContentBlock{{Type: "text", Text: "The longest term is 10 years, from lease.pdf."}},
		},
	}
	a := NewAnalyst(ai, "claude-test", config.ChatConfig{MaxTokens: 2048})

	history := []model.ChatMessage{
		{Role: model.RoleUser, Content: "How many leases are there?"},
		{Role: model.RoleAssistant, Content: "There are 3 leases."},
	}

	reply, err := a.Ask(context.Background(), "Which has the longest term?", "Documents: lease.pdf", history)
	require.NoError(t, err)
	assert.Equal(t, "The longest term is 10 years, from lease.pdf.", reply)

	req := ai.lastReq
	assert.Equal(t, "claude-test", req.Model)
	assert.Equal(t, int64(2048), req.MaxTokens)
	assert.Contains(t, req.System, "legal analyst assistant")

	require.Len(t, req.Messages, 3)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "assistant", req.Messages[1].Role)
	last := req.Messages[2]
	assert.Equal(t, "user", last.Role)
	assert.Contains(t, last.Content, "Data Context:\nDocuments: lease.pdf")
	assert.Contains(t, last.Content, "User Question: Which has the longest term?")
}

func TestAsk_ErrorSurfacesWithoutRetry(t *testing.T) {
	ai := &mockAnthropicClient{err: &anthropic.RateLimitedError{}}
	a := NewAnalyst(ai, "claude-test", config.ChatConfig{MaxTokens: 2048})

	_, err := a.Ask(context.Background(), "question", "context", nil)
	assert.True(t, anthropic.IsRateLimited(err))
}
