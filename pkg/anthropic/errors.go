package anthropic

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitedError reports a 429 from the backend with its suggested wait.
// Retryable; the backoff policy belongs to the caller.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("anthropic: rate limited (retry after %s)", e.RetryAfter)
}

// UnauthorizedError reports a 401 from the backend. Not retryable; surfaced
// as a configuration problem.
type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string {
	return "anthropic: invalid API key"
}

// APIError reports any other non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic: unexpected status %d: %s", e.Status, e.Message)
}

// IsRateLimited reports whether err carries a RateLimitedError.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}

// IsUnauthorized reports whether err carries an UnauthorizedError.
func IsUnauthorized(err error) bool {
	var ua *UnauthorizedError
	return errors.As(err, &ua)
}
