// Package config loads the optional TOML configuration of the encoder.
// The encoding itself is fixed; configuration only covers logging and
// resource bounds.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// PathEnvVar names the environment variable holding the config file path
	PathEnvVar = "URLENC_CONFIG"
	// LogLevelEnvVar overrides log_level from the config file
	LogLevelEnvVar = "URLENC_LOG_LEVEL"

	// DefaultMaxLineLength is the line buffer size, terminator included
	DefaultMaxLineLength = 8192
	// MinMaxLineLength leaves room for one content byte plus the terminator
	MinMaxLineLength = 2
)

// Error definitions for the config package
var (
	// ErrInvalidLogLevel is returned when an invalid log level is provided
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidMaxLineLength is returned when max_line_length is too small
	ErrInvalidMaxLineLength = errors.New("invalid max_line_length")
	// ErrInvalidMaxOutputSize is returned when max_output_size is negative
	ErrInvalidMaxOutputSize = errors.New("invalid max_output_size")
)

// LogLevel represents the logging level. The empty value disables console logging.
type LogLevel string

const (
	// LogLevelDebug enables debug-level logging
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo enables info-level logging
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn enables warning-level logging
	LogLevelWarn LogLevel = "warn"
	// LogLevelError enables error-level logging only
	LogLevelError LogLevel = "error"
)

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// This enables validation during TOML parsing.
func (l *LogLevel) UnmarshalText(text []byte) error {
	s := LogLevel(strings.ToLower(strings.TrimSpace(string(text))))
	switch s {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
		*l = s
		return nil
	default:
		return fmt.Errorf("%w: %q (must be one of: debug, info, warn, error)", ErrInvalidLogLevel, string(text))
	}
}

// ToSlogLevel converts LogLevel to slog.Level. The empty level maps to info.
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config holds the encoder configuration.
type Config struct {
	LogLevel LogLevel `toml:"log_level"`
	LogDir   string   `toml:"log_dir"`
	// MaxLineLength bounds a single read, terminator included. Longer lines
	// are split and the remainder is processed as a new line.
	MaxLineLength int `toml:"max_line_length"`
	// MaxOutputSize caps the encoder output buffer per line; 0 is unlimited.
	MaxOutputSize int `toml:"max_output_size"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MaxLineLength: DefaultMaxLineLength,
	}
}

// Parse decodes TOML content on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(content []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxLineLength < MinMaxLineLength {
		return fmt.Errorf("%w: %d (must be at least %d)", ErrInvalidMaxLineLength, c.MaxLineLength, MinMaxLineLength)
	}
	if c.MaxOutputSize < 0 {
		return fmt.Errorf("%w: %d (must be zero or positive)", ErrInvalidMaxOutputSize, c.MaxOutputSize)
	}
	return nil
}

// Load reads the file named by URLENC_CONFIG, or returns defaults when it
// is unset, then applies a non-empty URLENC_LOG_LEVEL override.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(PathEnvVar); path != "" {
		content, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if cfg, err = Parse(content); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	// An empty value is treated as unset
	if level := os.Getenv(LogLevelEnvVar); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("%s: %w", LogLevelEnvVar, err)
		}
	}
	return cfg, nil
}
