package extract

import (
	"context"
	"sync"

	"github.com/willimj3/bella-document-review/pkg/anthropic"
)

// mockAnthropicClient implements anthropic.Client for testing. respond is
// called per request when set; otherwise the fixed response/err pair is
// returned.
type mockAnthropicClient struct {
	mu      sync.Mutex
	calls   int
	respond func(call int, req anthropic.MessageRequest) (*anthropic.MessageResponse, error)

	response *anthropic.MessageResponse
	err      error
}

func (m *mockAnthropicClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.mu.Unlock()

	if m.respond != nil {
		return m.respond(call, req)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockAnthropicClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// textResponse builds a single-text-block response.
func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}
