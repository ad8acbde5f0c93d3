package anthropic

import (
	"errors"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willimj3/bella-document-review/internal/resilience"
)

func TestIsRateLimited(t *testing.T) {
	err := &RateLimitedError{RetryAfter: 30 * time.Second}
	assert.True(t, IsRateLimited(err))
	assert.True(t, IsRateLimited(eris.Wrap(err, "extract cell")))
	assert.False(t, IsRateLimited(&UnauthorizedError{}))
	assert.False(t, IsRateLimited(nil))
	assert.Contains(t, err.Error(), "30s")
}

func TestIsUnauthorized(t *testing.T) {
	err := &UnauthorizedError{}
	assert.True(t, IsUnauthorized(err))
	assert.True(t, IsUnauthorized(eris.Wrap(err, "extract cell")))
	assert.False(t, IsUnauthorized(&RateLimitedError{}))
	assert.False(t, IsUnauthorized(nil))
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{Status: 529, Message: "overloaded"}
	assert.Contains(t, err.Error(), "529")
	assert.Contains(t, err.Error(), "overloaded")
	assert.False(t, IsRateLimited(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClassifyError_TransportFailureIsTransient(t *testing.T) {
	// No *sdk.Error in the chain means the request never produced an HTTP
	// response; those failures must be retryable downstream.
	classified := classifyError(errors.New(`Post "https://api.anthropic.com": connection reset by peer`))

	var te *resilience.TransientError
	require.ErrorAs(t, classified, &te)
	assert.Equal(t, 0, te.StatusCode)
	assert.True(t, resilience.IsTransient(classified))
	assert.Contains(t, classified.Error(), "create message")
	assert.False(t, IsRateLimited(classified))
	assert.False(t, IsUnauthorized(classified))
}
