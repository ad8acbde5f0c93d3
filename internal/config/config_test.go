package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-opus-4-20250514", cfg.Anthropic.Model)
	assert.Equal(t, 150000, cfg.Extract.MaxDocChars)
	assert.Equal(t, 1024, cfg.Extract.MaxTokens)
	assert.Equal(t, 2, cfg.Extract.Concurrency)
	assert.Equal(t, 500, cfg.Extract.RequestIntervalMS)
	assert.Equal(t, 3, cfg.Extract.RateLimitRetries)
	assert.Equal(t, 2, cfg.Extract.TransientRetries)
	assert.Equal(t, 2048, cfg.Chat.MaxTokens)
	assert.Equal(t, 100000, cfg.Chat.MaxContextChars)
	assert.Equal(t, "pdftotext", cfg.Parse.PdfToTextPath)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BELLA_ANTHROPIC_KEY", "sk-test-key")
	t.Setenv("BELLA_ANTHROPIC_MODEL", "claude-test-model")
	t.Setenv("BELLA_EXTRACT_CONCURRENCY", "4")
	t.Setenv("BELLA_SERVER_PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test-key", cfg.Anthropic.Key)
	assert.Equal(t, "claude-test-model", cfg.Anthropic.Model)
	assert.Equal(t, 4, cfg.Extract.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
anthropic:
  model: claude-from-file
extract:
  max_doc_chars: 50000
  concurrency: 1
`), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-from-file", cfg.Anthropic.Model)
	assert.Equal(t, 50000, cfg.Extract.MaxDocChars)
	assert.Equal(t, 1, cfg.Extract.Concurrency)
	// Unset keys keep their defaults.
	assert.Equal(t, 1024, cfg.Extract.MaxTokens)
}

func TestRequestInterval(t *testing.T) {
	cfg := ExtractConfig{RequestIntervalMS: 500}
	assert.Equal(t, 500*time.Millisecond, cfg.RequestInterval())
	assert.Equal(t, time.Duration(0), ExtractConfig{}.RequestInterval())
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.NotNil(t, zap.L())

	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
