// Package cacheinfra provides the cache store backends the public cache
// package wraps: an in-process store with per-entry TTLs and a sturdyc-based
// alternative. Backends deal in untyped values; type safety is layered on by
// the cache package.
package cacheinfra

import "time"

// Config holds the tuning knobs shared by the store backends.
type Config struct {
	// Capacity defines the maximum number of entries the store holds before
	// capacity-pressure eviction kicks in. Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Only the sturdyc backend uses it; the memory store shards internally.
	// Must be greater than 0. Default: 256
	NumShards int

	// TTL is the fallback time-to-live applied when a caller stores an entry
	// without one. Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries the sturdyc
	// backend evicts when it reaches capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are swept out in the
	// background. Zero disables the background sweep for the memory store
	// and uses the backend default for sturdyc; expired entries are still
	// filtered out lazily on read either way.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
		EvictionInterval:   time.Minute,
	}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Backend is the untyped store contract implemented by this package.
// Get must treat expired and never-set keys identically, and Set must
// replace any previous entry atomically with respect to concurrent readers.
type Backend interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Remove(key string)
	Clear()
}
