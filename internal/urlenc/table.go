// Package urlenc implements RFC 3986 style percent-encoding of single lines.
// Bytes outside a fixed safe set are replaced by their %XX form; bytes of
// multibyte UTF-8 sequences are escaped one octet at a time.
package urlenc

import "sync"

// asciiSize is the number of entries in the classification table.
// Bytes at or above this value are always unsafe.
const asciiSize = 128

// safePunctuation lists the non-alphanumeric characters that pass through unescaped.
const safePunctuation = "-_.:/!~*@$&[]+=,;?"

var (
	safeTable [asciiSize]bool
	tableOnce sync.Once
)

// InitTable builds the classification table. It is safe to call any number
// of times; the table is populated exactly once per process.
func InitTable() {
	tableOnce.Do(buildTable)
}

func buildTable() {
	for c := 'a'; c <= 'z'; c++ {
		safeTable[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		safeTable[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		safeTable[c] = true
	}
	for i := 0; i < len(safePunctuation); i++ {
		safeTable[safePunctuation[i]] = true
	}
}

// IsSafe reports whether b may be emitted without escaping.
func IsSafe(b byte) bool {
	InitTable()
	if b >= asciiSize {
		return false
	}
	return safeTable[b]
}
