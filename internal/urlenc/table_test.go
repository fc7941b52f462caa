package urlenc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func isExpectedSafe(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	default:
		return strings.IndexByte("-_.:/!~*@$&[]+=,;?", b) >= 0
	}
}

func TestIsSafe_AllBytes(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		assert.Equal(t, isExpectedSafe(b), IsSafe(b), "byte 0x%02X", b)
	}
}

func TestIsSafe_NotableUnsafe(t *testing.T) {
	for _, b := range []byte{' ', '#', '%', '"', '\'', '<', '>', '\\', '^', '`', '{', '|', '}', '(', ')', 0x00, '\t', '\n', 0x7F} {
		t.Run(fmt.Sprintf("0x%02X", b), func(t *testing.T) {
			assert.False(t, IsSafe(b))
		})
	}
}

func TestInitTable_Idempotent(t *testing.T) {
	InitTable()
	before := safeTable
	InitTable()
	assert.Equal(t, before, safeTable)
}
