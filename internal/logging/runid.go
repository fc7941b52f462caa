package logging

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// GenerateRunID returns a new ULID identifying one run of the filter.
// ULIDs sort by creation time, which keeps per-run log files ordered.
func GenerateRunID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
