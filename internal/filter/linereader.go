package filter

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// LineReader reads lines of bounded length. A read returns at most
// maxLineLength-1 bytes, including the terminating line feed when present;
// the remainder of a longer line is returned by the following reads.
type LineReader struct {
	r     *bufio.Reader
	limit int
	buf   []byte
}

// NewLineReader wraps r. maxLineLength counts the terminator, so it must be at least 2.
func NewLineReader(r io.Reader, maxLineLength int) *LineReader {
	return &LineReader{
		r:     bufio.NewReader(r),
		limit: maxLineLength - 1,
	}
}

// ReadLine returns the next line. The slice is only valid until the next
// call. It returns io.EOF once the input is exhausted and no bytes remain.
func (lr *LineReader) ReadLine() ([]byte, error) {
	lr.buf = lr.buf[:0]
	for len(lr.buf) < lr.limit {
		if lr.r.Buffered() == 0 {
			if _, err := lr.r.Peek(1); err != nil {
				if errors.Is(err, io.EOF) && len(lr.buf) > 0 {
					return lr.buf, nil
				}
				return nil, err
			}
		}

		// Peek within the buffered window never fails
		window, _ := lr.r.Peek(min(lr.r.Buffered(), lr.limit-len(lr.buf)))
		n := len(window)
		terminated := false
		if i := bytes.IndexByte(window, '\n'); i >= 0 {
			n = i + 1
			terminated = true
		}
		lr.buf = append(lr.buf, window[:n]...)
		_, _ = lr.r.Discard(n)
		if terminated {
			break
		}
	}
	return lr.buf, nil
}
