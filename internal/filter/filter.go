// Package filter drives the encoder over a stream: it reads bounded lines,
// percent-encodes each one, and writes the results in input order.
package filter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/isseis/go-urlenc/internal/config"
	"github.com/isseis/go-urlenc/internal/urlenc"
)

// Stats summarizes one run.
type Stats struct {
	Lines    int   // lines read
	Encoded  int   // lines written to the output
	Failed   int   // lines skipped because encoding failed
	BytesIn  int64 // bytes read, terminators included
	BytesOut int64 // bytes written, terminators included
}

// Options configures a Filter. Zero fields take defaults.
type Options struct {
	Encoder       *urlenc.Encoder
	Logger        *slog.Logger
	MaxLineLength int
}

// Filter is the read/encode/write loop.
type Filter struct {
	encoder       *urlenc.Encoder
	logger        *slog.Logger
	maxLineLength int
}

// New creates a Filter.
func New(opts Options) *Filter {
	f := &Filter{
		encoder:       opts.Encoder,
		logger:        opts.Logger,
		maxLineLength: opts.MaxLineLength,
	}
	if f.encoder == nil {
		f.encoder = urlenc.NewEncoder()
	}
	if f.logger == nil {
		f.logger = slog.New(slog.DiscardHandler)
	}
	if f.maxLineLength < config.MinMaxLineLength {
		f.maxLineLength = config.DefaultMaxLineLength
	}
	return f
}

// Run processes in until EOF. Each encoded line is written to out followed
// by a line feed. A line that fails to encode is reported on diag and
// skipped; such failures do not make Run return an error. Only read and
// write errors on the streams do.
func (f *Filter) Run(in io.Reader, out, diag io.Writer) (Stats, error) {
	var stats Stats
	reader := NewLineReader(in, f.maxLineLength)
	w := bufio.NewWriter(out)

	for {
		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read input: %w", err)
		}
		stats.Lines++
		stats.BytesIn += int64(len(line))

		encoded, err := f.encoder.EncodeLine(line)
		if err != nil {
			stats.Failed++
			f.reportFailure(diag, stats.Lines, line, err)
			continue
		}

		if _, err := w.Write(encoded); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
		stats.Encoded++
		stats.BytesOut += int64(len(encoded)) + 1
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}

	f.logger.Info("Input exhausted",
		"lines", stats.Lines,
		"encoded", stats.Encoded,
		"failed", stats.Failed,
		"bytes_in", stats.BytesIn,
		"bytes_out", stats.BytesOut)
	if stats.Failed > 0 {
		// Exit status stays 0 for compatibility; the count is the only trace.
		f.logger.Warn("Some lines could not be encoded", "failed", stats.Failed)
	}
	return stats, nil
}

func (f *Filter) reportFailure(diag io.Writer, lineNo int, line []byte, err error) {
	content := line
	if n := len(content); n > 0 && content[n-1] == '\n' {
		content = content[:n-1]
	}
	fmt.Fprintf(diag, "Error encoding line %d: %v: %q\n", lineNo, err, content)
	f.logger.Warn("Line encoding failed",
		"line", lineNo,
		"length", len(content),
		"error", err)
}
