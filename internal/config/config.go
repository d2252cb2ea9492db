// Package config loads process configuration from the environment
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the settings shared by every clash command
type Config struct {
	// RedisAddr selects the Redis store; empty keeps battles in memory.
	RedisAddr string `env:"CLASH_REDIS_ADDR"`

	SessionTTL time.Duration `env:"CLASH_SESSION_TTL" envDefault:"2h"`

	// Seed fixes the battle seed; 0 draws a fresh one per battle.
	Seed int64 `env:"CLASH_SEED" envDefault:"0"`

	LogFormat string `env:"CLASH_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"CLASH_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the config values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionTTL <= 0 {
		vb.InvalidField("CLASH_SESSION_TTL", "must be positive")
	}
	errors.ValidateEnum("CLASH_LOG_FORMAT", strings.ToLower(c.LogFormat),
		[]string{LogFormatText, LogFormatJSON}, vb)
	errors.ValidateEnum("CLASH_LOG_LEVEL", strings.ToLower(c.LogLevel),
		[]string{"debug", "info", "warn", "error"}, vb)

	return vb.Build()
}

// Level maps LogLevel onto slog
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the slog logger described by the config
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}

	if strings.ToLower(c.LogFormat) == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
