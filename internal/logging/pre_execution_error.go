package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrorType represents different types of pre-execution errors
type ErrorType string

const (
	// ErrorTypeConfigParsing represents configuration loading or validation failures
	ErrorTypeConfigParsing ErrorType = "config_parsing_failed"
	// ErrorTypeLogFileOpen represents log file opening failures
	ErrorTypeLogFileOpen ErrorType = "log_file_open_failed"
	// ErrorTypeInteractiveInput represents standard input attached to a terminal
	ErrorTypeInteractiveInput ErrorType = "interactive_input"
	// ErrorTypeSystemError represents system errors
	ErrorTypeSystemError ErrorType = "system_error"
)

// PreExecutionError represents an error that occurs before the first line is processed
type PreExecutionError struct {
	Type      ErrorType
	Message   string
	Component string
	RunID     string
	Err       error // Wrapped error for better error context preservation
}

// Error implements the error interface
func (e *PreExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v (component: %s, run_id: %s)", e.Type, e.Message, e.Err, e.Component, e.RunID)
	}
	return fmt.Sprintf("%s: %s (component: %s, run_id: %s)", e.Type, e.Message, e.Component, e.RunID)
}

// Unwrap implements error wrapping for errors.Unwrap
func (e *PreExecutionError) Unwrap() error {
	return e.Err
}

// HandlePreExecutionError reports a pre-execution error on w and through slog.
func HandlePreExecutionError(w io.Writer, e *PreExecutionError) {
	// Build the block first so it reaches w in a single write
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", e.Type)
	if e.Component != "" {
		fmt.Fprintf(&b, "  Component: %s\n", e.Component)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, "  Details: %s: %v\n", e.Message, e.Err)
	} else {
		fmt.Fprintf(&b, "  Details: %s\n", e.Message)
	}
	if e.RunID != "" {
		fmt.Fprintf(&b, "  Run ID: %s\n", e.RunID)
	}
	fmt.Fprint(w, b.String())

	attrs := []any{
		"error_type", string(e.Type),
		"error_message", e.Message,
		"component", e.Component,
		"run_id", e.RunID,
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
	}
	slog.Error("Pre-execution error occurred", attrs...)
}
