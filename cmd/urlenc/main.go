// Package main provides the urlenc command.
// It reads lines from a pipe and writes each one percent-encoded to stdout.
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-urlenc/internal/config"
	"github.com/isseis/go-urlenc/internal/filter"
	"github.com/isseis/go-urlenc/internal/logging"
	"github.com/isseis/go-urlenc/internal/terminal"
	"github.com/isseis/go-urlenc/internal/urlenc"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr, terminal.NewInputDetector(os.Stdin)))
}

// run executes the filter and returns the process exit code.
// Lines that fail to encode do not change the exit code.
func run(stdin io.Reader, stdout, stderr io.Writer, detector terminal.InputDetector) int {
	// Generate run ID early for error reporting
	runID := logging.GenerateRunID()

	// Stay quiet until the configured logger replaces this one
	slog.SetDefault(slog.New(slog.DiscardHandler))

	// Abort before any config is read or log file is created
	if detector.IsTerminal() {
		logging.HandlePreExecutionError(stderr, &logging.PreExecutionError{
			Type:      logging.ErrorTypeInteractiveInput,
			Message:   "It's not a pipe: standard input is a terminal, pipe or redirect input instead",
			Component: "terminal",
			RunID:     runID,
		})
		return exitFailure
	}

	cfg, logger, err := setup(runID, stderr)
	if err != nil {
		logging.HandlePreExecutionError(stderr, err)
		return exitFailure
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	if err := process(runID, cfg, logger, stdin, stdout, stderr); err != nil {
		var preExecErr *logging.PreExecutionError
		if !errors.As(err, &preExecErr) {
			preExecErr = &logging.PreExecutionError{
				Type:      logging.ErrorTypeSystemError,
				Message:   "Filter terminated",
				Component: "filter",
				RunID:     runID,
				Err:       err,
			}
		}
		logging.HandlePreExecutionError(stderr, preExecErr)
		return exitFailure
	}
	return exitSuccess
}

// setup loads the configuration and builds the logger.
func setup(runID string, stderr io.Writer) (*config.Config, *logging.Logger, *logging.PreExecutionError) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, &logging.PreExecutionError{
			Type:      logging.ErrorTypeConfigParsing,
			Message:   "Failed to load config",
			Component: "config",
			RunID:     runID,
			Err:       err,
		}
	}

	logger, err := logging.NewLogger(logging.LoggerConfig{
		Level:         cfg.LogLevel.ToSlogLevel(),
		Console:       cfg.LogLevel != "",
		ConsoleWriter: stderr,
		LogDir:        cfg.LogDir,
		RunID:         runID,
	})
	if err != nil {
		return nil, nil, &logging.PreExecutionError{
			Type:      logging.ErrorTypeLogFileOpen,
			Message:   "Failed to setup logger",
			Component: "logging",
			RunID:     runID,
			Err:       err,
		}
	}
	return cfg, logger, nil
}

// process runs the filter to EOF.
func process(runID string, cfg *config.Config, logger *logging.Logger, stdin io.Reader, stdout, stderr io.Writer) error {
	urlenc.InitTable()
	logger.Debug("Filter starting",
		"run_id", runID,
		"max_line_length", cfg.MaxLineLength,
		"max_output_size", cfg.MaxOutputSize,
		"log_path", logger.LogPath)

	f := filter.New(filter.Options{
		Encoder:       urlenc.NewEncoder(urlenc.WithMaxOutputSize(cfg.MaxOutputSize)),
		Logger:        logger.Logger,
		MaxLineLength: cfg.MaxLineLength,
	})
	_, err := f.Run(stdin, stdout, stderr)
	return err
}
