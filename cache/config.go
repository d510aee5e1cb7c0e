package cache

import (
	"time"

	"github.com/davenforce/SnowflakeProxy/internal/cacheinfra"
)

// Config exposes store configuration options for consumers of the cache package.
type Config struct {
	// Capacity is the maximum number of entries held before
	// capacity-pressure eviction.
	Capacity int

	// NumShards is the shard count used by the sturdyc backend.
	NumShards int

	// TTL is the fallback time-to-live for entries stored without one, and
	// the client-wide TTL of the sturdyc backend.
	TTL time.Duration

	// EvictionPercentage is the batch size, in percent, of sturdyc evictions.
	EvictionPercentage int

	// EvictionInterval is how often expired entries are swept in the
	// background. Zero disables the memory store's sweeper.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewMemoryStore constructs the default in-process Store with per-entry TTLs.
func NewMemoryStore(cfg Config) (Store, error) {
	backend, err := cacheinfra.NewMemoryStore(cfg.toInternal())
	if err != nil {
		return nil, err
	}
	return &backendStore{backend: backend, closer: backend.Close}, nil
}

// NewSturdycStore constructs a Store backed by a sturdyc client. Per-entry
// TTLs are approximated by cfg.TTL; see the cacheinfra documentation.
func NewSturdycStore(cfg Config) (Store, error) {
	backend, err := cacheinfra.NewSturdycStore(cfg.toInternal())
	if err != nil {
		return nil, err
	}
	return &backendStore{backend: backend}, nil
}

// backendStore adapts an untyped cacheinfra backend to the typed Store
// contract. A stored value that is not a *Result is reported as a miss
// rather than surfaced as an error.
type backendStore struct {
	backend cacheinfra.Backend
	closer  func() error
}

func (s *backendStore) Get(key string) (*Result, bool) {
	v, ok := s.backend.Get(key)
	if !ok {
		return nil, false
	}
	result, ok := v.(*Result)
	if !ok {
		return nil, false
	}
	return result, true
}

func (s *backendStore) Set(key string, value *Result, ttl time.Duration) {
	s.backend.Set(key, value, ttl)
}

func (s *backendStore) Remove(key string) {
	s.backend.Remove(key)
}

func (s *backendStore) Clear() {
	s.backend.Clear()
}

// Close releases backend resources such as the memory store's sweeper.
func (s *backendStore) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
