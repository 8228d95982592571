package lifecycle

import "sync/atomic"

// globalIDCounter is the source of instance identifiers.
var globalIDCounter uint64

// NextID returns the next process-wide identifier.
// IDs are monotonically increasing, start at 1, and are never reused.
func NextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
