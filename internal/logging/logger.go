package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// File, when set, duplicates output into a size-rotated log file.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// ParseLevel maps a config/env level name to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new zerolog logger with the given configuration.
// The returned closer releases the log file, if any.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	var output io.Writer = os.Stderr

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: cfg.TimeFormat,
		}
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		rotator, err := NewLogRotator(cfg.File, cfg.MaxSizeMB, cfg.MaxBackups)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		output = zerolog.MultiLevelWriter(output, rotator)
		closer = rotator
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger(), closer, nil
}

// SetLevel changes the process-wide minimum level. Loggers created at
// trace level follow it, which is how a config reload changes verbosity.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// ApplyEnv overrides level and format from the environment.
func ApplyEnv(cfg Config) Config {
	if level := os.Getenv("WEBSHELL_LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level)
	}

	if format := os.Getenv("WEBSHELL_LOG_FORMAT"); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}
	return cfg
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
