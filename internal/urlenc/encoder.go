package urlenc

import (
	"errors"
	"fmt"
)

const (
	upperHex = "0123456789ABCDEF"

	// initialBufferSize is the starting capacity of the output buffer.
	initialBufferSize = 64

	// Free space required before consuming an input byte: its encoded
	// form plus one byte for the terminator.
	safeHeadroom    = 2
	escapedHeadroom = 4
)

// Static errors returned by EncodeLine
var (
	// ErrNilLine indicates that no input buffer was supplied
	ErrNilLine = errors.New("nil input line")
	// ErrOutputTooLarge indicates that growing the output buffer would exceed the configured limit
	ErrOutputTooLarge = errors.New("encoded output exceeds size limit")
)

// Encoder percent-encodes lines using the package classification table.
// The zero value is ready to use and has no output size limit.
type Encoder struct {
	maxOutputSize int
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithMaxOutputSize caps the capacity of the output buffer in bytes.
// The cap covers the encoded content plus its terminator, so a line
// encoding to n bytes needs a limit of at least n+1. Zero means unlimited.
func WithMaxOutputSize(size int) Option {
	return func(e *Encoder) {
		e.maxOutputSize = size
	}
}

// NewEncoder creates an Encoder with the given options applied.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeLine encodes one line. Scanning stops at the first line feed, which
// is never copied. The returned slice holds exactly the encoded content and
// is followed in its backing array by a zero byte, so out[:len(out)+1] is a
// NUL-terminated string.
//
// An empty line yields an empty, non-nil slice. On error no output is
// produced and any partially built buffer is dropped.
func (e *Encoder) EncodeLine(line []byte) ([]byte, error) {
	if line == nil {
		return nil, ErrNilLine
	}
	capacity := initialBufferSize
	if e.maxOutputSize > 0 && capacity > e.maxOutputSize {
		capacity = e.maxOutputSize
	}
	buf := make([]byte, 0, capacity)

	for _, b := range line {
		if b == '\n' {
			break
		}
		safe := IsSafe(b)
		need := escapedHeadroom
		if safe {
			need = safeHeadroom
		}
		if cap(buf)-len(buf) < need {
			grown, err := e.grow(buf, need)
			if err != nil {
				return nil, err
			}
			buf = grown
		}
		if safe {
			buf = append(buf, b)
			continue
		}
		buf = append(buf, '%', upperHex[b>>4], upperHex[b&0x0f])
	}

	// Terminator lives past the content length. The headroom check guarantees
	// room for it whenever at least one byte was consumed.
	if cap(buf) == len(buf) {
		return nil, fmt.Errorf("%w: no room for terminator in %d bytes", ErrOutputTooLarge, cap(buf))
	}
	buf = append(buf, 0)
	return buf[:len(buf)-1], nil
}

// grow doubles the buffer capacity, preserving its content, so that at
// least need bytes are free.
func (e *Encoder) grow(buf []byte, need int) ([]byte, error) {
	newCap := max(cap(buf)*2, len(buf)+need)
	if e.maxOutputSize > 0 && newCap > e.maxOutputSize {
		newCap = e.maxOutputSize
	}
	if newCap-len(buf) < need {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrOutputTooLarge, e.maxOutputSize)
	}
	grown := make([]byte, len(buf), newCap)
	copy(grown, buf)
	return grown, nil
}
