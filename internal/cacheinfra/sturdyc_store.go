package cacheinfra

import (
	"time"

	"github.com/viccon/sturdyc"
)

// SturdycStore is a Backend built on a sturdyc client, for deployments that
// want its sharded storage and batched eviction behaviour.
//
// sturdyc applies one client-wide TTL, so the per-entry ttl passed to Set is
// approximated by the TTL the store was configured with. Callers that need
// exact per-entry TTLs should use the MemoryStore backend.
//
// Version compatibility note: this implementation assumes the sturdyc v1.x
// API. Monitor sturdyc version upgrades for potential option mapping changes.
type SturdycStore struct {
	client *sturdyc.Client[any]
}

// NewSturdycStore validates the configuration and initializes a sturdyc
// client with the provided settings. Capacity, NumShards, TTL and
// EvictionPercentage map directly onto sturdyc.New; a positive
// EvictionInterval is applied as an option.
func NewSturdycStore(cfg Config) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		options...,
	)

	return &SturdycStore{client: client}, nil
}

// Get implements Backend.Get.
func (s *SturdycStore) Get(key string) (any, bool) {
	return s.client.Get(key)
}

// Set implements Backend.Set. The ttl argument is ignored in favour of the
// client-wide TTL; see the type documentation.
func (s *SturdycStore) Set(key string, value any, _ time.Duration) {
	s.client.Set(key, value)
}

// Remove implements Backend.Remove.
func (s *SturdycStore) Remove(key string) {
	s.client.Delete(key)
}

// Clear implements Backend.Clear by scanning and deleting every key.
func (s *SturdycStore) Clear() {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
}
