package canvas

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces unique instance identifiers.
type IDGenerator func() string

// UUIDv7 returns a generator of RFC 9562 UUID v7 strings.
// Time-sortable, so instance ids also record creation order.
func UUIDv7() IDGenerator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Sequential returns a generator of "<prefix>-1", "<prefix>-2", ...
// Used for deterministic replays and tests.
func Sequential(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
