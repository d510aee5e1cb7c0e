package cacheinfra

import (
	"sort"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// memoryEntry pairs a stored value with its expiry deadline. Entries are
// written whole, so readers never observe a partially constructed value.
type memoryEntry struct {
	value     any
	expiresAt time.Time
}

// MemoryStore is the default Backend: an in-process concurrent map with a
// per-entry TTL. Expired entries are filtered out lazily on read and swept
// in the background when an eviction interval is configured. When the entry
// count exceeds the configured capacity, the entries closest to expiry are
// evicted first; entries are never evicted before their TTL without that
// capacity pressure.
type MemoryStore struct {
	entries    *xsync.MapOf[string, memoryEntry]
	capacity   int
	defaultTTL time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a memory store from the given configuration,
// starting the background sweeper when cfg.EvictionInterval is positive.
func NewMemoryStore(cfg Config) (*MemoryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &MemoryStore{
		entries:    xsync.NewMapOf[string, memoryEntry](),
		capacity:   cfg.Capacity,
		defaultTTL: cfg.TTL,
		stop:       make(chan struct{}),
	}

	if cfg.EvictionInterval > 0 {
		go s.sweepLoop(cfg.EvictionInterval)
	}

	return s, nil
}

// Get implements Backend.Get. A key whose TTL has elapsed is reported as
// absent, exactly like a key that was never set.
func (s *MemoryStore) Get(key string) (any, bool) {
	e, ok := s.entries.Load(key)
	if !ok {
		return nil, false
	}
	if !time.Now().Before(e.expiresAt) {
		// Delete only if the stored entry is still the expired one; a
		// concurrent Set may have replaced it since the Load above.
		s.entries.Compute(key, func(old memoryEntry, loaded bool) (memoryEntry, bool) {
			if loaded && !time.Now().Before(old.expiresAt) {
				return memoryEntry{}, true
			}
			return old, false
		})
		return nil, false
	}
	return e.value, true
}

// Set implements Backend.Set. A non-positive ttl falls back to the
// configured default.
func (s *MemoryStore) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.entries.Store(key, memoryEntry{value: value, expiresAt: time.Now().Add(ttl)})

	if s.entries.Size() > s.capacity {
		s.evictOverCapacity()
	}
}

// Remove implements Backend.Remove.
func (s *MemoryStore) Remove(key string) {
	s.entries.Delete(key)
}

// Clear implements Backend.Clear.
func (s *MemoryStore) Clear() {
	s.entries.Clear()
}

// Close stops the background sweeper. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	now := time.Now()
	s.entries.Range(func(key string, e memoryEntry) bool {
		if !now.Before(e.expiresAt) {
			s.entries.Compute(key, func(old memoryEntry, loaded bool) (memoryEntry, bool) {
				if loaded && !now.Before(old.expiresAt) {
					return memoryEntry{}, true
				}
				return old, false
			})
		}
		return true
	})
}

// evictOverCapacity removes expired entries first, then the entries closest
// to their deadline until the store is back under capacity.
func (s *MemoryStore) evictOverCapacity() {
	s.removeExpired()

	surplus := s.entries.Size() - s.capacity
	if surplus <= 0 {
		return
	}

	type deadline struct {
		key       string
		expiresAt time.Time
	}
	candidates := make([]deadline, 0, s.entries.Size())
	s.entries.Range(func(key string, e memoryEntry) bool {
		candidates = append(candidates, deadline{key: key, expiresAt: e.expiresAt})
		return true
	})

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].expiresAt.Before(candidates[j].expiresAt)
	})

	for i := 0; i < surplus && i < len(candidates); i++ {
		s.entries.Delete(candidates[i].key)
	}
}
