// Package terminal decides whether standard input is an interactive
// terminal or a redirected stream.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// InputDetector reports whether the input stream is attached to a terminal.
type InputDetector interface {
	IsTerminal() bool
}

// FileInputDetector implements InputDetector for an *os.File
type FileInputDetector struct {
	file *os.File
}

// NewInputDetector creates a detector for the given file, usually os.Stdin
func NewInputDetector(file *os.File) InputDetector {
	return &FileInputDetector{file: file}
}

// IsTerminal returns true if the file is connected to a terminal.
// A nil file is never a terminal.
func (d *FileInputDetector) IsTerminal() bool {
	if d.file == nil {
		return false
	}
	// golang.org/x/term.IsTerminal() checks the descriptor with the platform ioctl
	return term.IsTerminal(int(d.file.Fd()))
}
