package cache

import (
	"time"

	"github.com/davenforce/SnowflakeProxy/table"
)

// Result is one completed query execution eligible for reuse. The Data table
// is immutable once the Result has been stored; a new execution always
// produces a new Result, never an in-place mutation.
type Result struct {
	Data       *table.Table
	ExecutedAt time.Time
}

// Store is the minimal key-value contract the query proxy caches through.
//
// Implementations must make Get/Set atomic per key with respect to
// concurrent callers: no reader ever observes a partially written entry.
// Expired entries and never-set keys are indistinguishable misses. Store
// operations never fail; an unavailable backend degrades to miss behaviour
// because caching is an optimization, not a correctness dependency.
type Store interface {
	// Get returns the live entry for key, or false when the key is absent
	// or its TTL has elapsed. Never blocks on backend I/O.
	Get(key string) (*Result, bool)

	// Set stores value under key for the given TTL, atomically replacing
	// any previous entry.
	Set(key string, value *Result, ttl time.Duration)

	// Remove drops a single entry. Administrative use; the request path
	// never calls it.
	Remove(key string)

	// Clear drops every entry.
	Clear()
}
