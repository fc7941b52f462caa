package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600

	// schemaVersion tags every JSON log record
	schemaVersion = 1
)

// ErrEmptyRunID is returned when a log file is requested without a run ID
var ErrEmptyRunID = errors.New("run ID is required for file logging")

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	Level         slog.Level
	Console       bool      // If true, text records go to ConsoleWriter
	ConsoleWriter io.Writer // Defaults to os.Stderr; stdout carries encoded data
	LogDir        string    // If set, a per-run JSON log file is created here
	RunID         string
}

// Logger bundles the configured slog.Logger with the resources it owns.
type Logger struct {
	*slog.Logger
	LogPath string
	file    *os.File
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// NewLogger builds a logger from config. With neither console nor file
// output configured, the returned logger discards everything.
func NewLogger(config LoggerConfig) (*Logger, error) {
	var handlers []slog.Handler
	result := &Logger{}

	if config.Console {
		w := config.ConsoleWriter
		if w == nil {
			w = os.Stderr
		}
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{Level: config.Level}))
	}

	if config.LogDir != "" {
		f, path, err := openRunLog(config.LogDir, config.RunID)
		if err != nil {
			return nil, err
		}
		result.file = f
		result.LogPath = path

		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		jsonHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: config.Level}).WithAttrs([]slog.Attr{
			slog.String("hostname", hostname),
			slog.Int("pid", os.Getpid()),
			slog.Int("schema_version", schemaVersion),
			slog.String("run_id", config.RunID),
		})
		handlers = append(handlers, jsonHandler)
	}

	if len(handlers) == 0 {
		result.Logger = slog.New(slog.DiscardHandler)
		return result, nil
	}
	result.Logger = slog.New(NewMultiHandler(handlers...))
	return result, nil
}

// openRunLog creates <hostname>_<timestamp>_<runID>.json inside dir.
func openRunLog(dir, runID string) (*os.File, string, error) {
	if runID == "" {
		return nil, "", ErrEmptyRunID
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.json", hostname, timestamp, runID))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, logFilePerm)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, path, nil
}
