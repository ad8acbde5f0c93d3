package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingResult(t *testing.T) {
	res := PendingResult()
	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, SentinelLoading, res.Value)
	assert.Equal(t, ConfidenceLow, res.Confidence)
}

func TestErrorResult(t *testing.T) {
	res := ErrorResult("rate limited by backend")
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, SentinelError, res.Value)
	assert.Equal(t, "rate limited by backend", res.Reasoning)
	assert.Equal(t, ConfidenceLow, res.Confidence)
}

func TestValidConfidence(t *testing.T) {
	assert.True(t, ValidConfidence(ConfidenceHigh))
	assert.True(t, ValidConfidence(ConfidenceMedium))
	assert.True(t, ValidConfidence(ConfidenceLow))
	assert.False(t, ValidConfidence("Very High"))
	assert.False(t, ValidConfidence("high"))
	assert.False(t, ValidConfidence(""))
}
