package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Chat      ChatConfig      `yaml:"chat" mapstructure:"chat"`
	Parse     ParseConfig     `yaml:"parse" mapstructure:"parse"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// ExtractConfig configures the per-cell protocol and the bulk scheduler.
type ExtractConfig struct {
	MaxDocChars       int `yaml:"max_doc_chars" mapstructure:"max_doc_chars"`
	MaxTokens         int `yaml:"max_tokens" mapstructure:"max_tokens"`
	Concurrency       int `yaml:"concurrency" mapstructure:"concurrency"`
	RequestIntervalMS int `yaml:"request_interval_ms" mapstructure:"request_interval_ms"`
	RateLimitRetries  int `yaml:"rate_limit_retries" mapstructure:"rate_limit_retries"`
	TransientRetries  int `yaml:"transient_retries" mapstructure:"transient_retries"`
}

// RequestInterval returns the minimum spacing between extraction requests.
func (c ExtractConfig) RequestInterval() time.Duration {
	return time.Duration(c.RequestIntervalMS) * time.Millisecond
}

// ChatConfig configures the analyst Q&A call.
type ChatConfig struct {
	MaxTokens       int `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxContextChars int `yaml:"max_context_chars" mapstructure:"max_context_chars"`
}

// ParseConfig configures document ingestion.
type ParseConfig struct {
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BELLA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key needs one so environment overrides are visible to
	// Unmarshal.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-opus-4-20250514")
	v.SetDefault("extract.max_doc_chars", 150000)
	v.SetDefault("extract.max_tokens", 1024)
	v.SetDefault("extract.concurrency", 2)
	v.SetDefault("extract.request_interval_ms", 500)
	v.SetDefault("extract.rate_limit_retries", 3)
	v.SetDefault("extract.transient_retries", 2)
	v.SetDefault("chat.max_tokens", 2048)
	v.SetDefault("chat.max_context_chars", 100000)
	v.SetDefault("parse.pdftotext_path", "pdftotext")
	v.SetDefault("server.port", 3001)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
