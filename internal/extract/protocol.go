package extract

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/willimj3/bella-document-review/internal/config"
	"github.com/willimj3/bella-document-review/internal/model"
	"github.com/willimj3/bella-document-review/internal/resilience"
	"github.com/willimj3/bella-document-review/pkg/anthropic"
)

// rateLimitBackoff is the base delay for rate-limit retries. With a 2.0
// multiplier the schedule runs 2s, 4s, 8s.
const rateLimitBackoff = 2 * time.Second

// Protocol converts one (document text, column) pair into a validated
// ExtractionResult. It owns the rate-limit retry layer; all other failures
// propagate to the scheduler, which applies its own retry budget.
type Protocol struct {
	client           anthropic.Client
	model            string
	maxDocChars      int
	maxTokens        int64
	rateLimitRetries int
}

// NewProtocol creates a per-cell extraction protocol.
func NewProtocol(client anthropic.Client, model string, cfg config.ExtractConfig) *Protocol {
	return &Protocol{
		client:           client,
		model:            model,
		maxDocChars:      cfg.MaxDocChars,
		maxTokens:        int64(cfg.MaxTokens),
		rateLimitRetries: cfg.RateLimitRetries,
	}
}

// ExtractCell runs a single extraction. Rate-limited calls are retried here
// with exponential backoff before the error surfaces; unauthorized and
// validation failures surface immediately.
func (p *Protocol) ExtractCell(ctx context.Context, documentText string, col model.Column) (model.ExtractionResult, error) {
	if documentText == "" {
		return model.ExtractionResult{}, &ValidationError{Msg: "documentText is required"}
	}
	if col.Prompt == "" {
		return model.ExtractionResult{}, &ValidationError{Msg: "columnPrompt is required"}
	}

	truncated, wasTruncated := TruncateDocument(documentText, p.maxDocChars)
	if wasTruncated {
		zap.L().Debug("document truncated for extraction",
			zap.String("column", col.Name),
			zap.Int("original_chars", len(documentText)),
			zap.Int("max_chars", p.maxDocChars),
		)
	}

	req := anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    SystemPrompt(),
		Messages: []anthropic.Message{
			{Role: "user", Content: BuildUserMessage(truncated, col.Prompt, col.Type, col.Options)},
		},
	}

	retryCfg := resilience.RetryConfig{
		MaxAttempts:    p.rateLimitRetries + 1,
		InitialBackoff: rateLimitBackoff,
		Multiplier:     2.0,
		ShouldRetry:    anthropic.IsRateLimited,
		OnRetry:        resilience.RetryLogger("anthropic", "extract"),
	}

	resp, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return p.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return model.ExtractionResult{}, err
	}

	resp.Usage.LogUsage(p.model, "extract")

	return ParseExtractionResponse(resp.Text())
}
