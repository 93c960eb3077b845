package authcache

import (
	"sync"
	"time"
)

// entry is a cached value and the moment it was stored. Freshness is a pure
// function of time: an entry is fresh iff now - cachedAt < ttl. Staleness is
// never recorded explicitly.
type entry[V any] struct {
	value    V
	cachedAt time.Time
}

// store holds the most recent successful fetch result per key for the
// lifetime of the process. It does nothing beyond safe mutation; expiry is
// evaluated lazily at read time, and absent vs. expired is indistinguishable
// to callers (both are misses).
type store[V any] struct {
	mu  sync.RWMutex
	m   map[string]entry[V]
	ttl time.Duration
}

func newStore[V any](ttl time.Duration) *store[V] {
	return &store[V]{
		m:   make(map[string]entry[V]),
		ttl: ttl,
	}
}

func (s *store[V]) read(key string, now time.Time) (V, bool) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok || now.Sub(e.cachedAt) >= s.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// write unconditionally overwrites any existing entry. Last writer wins.
func (s *store[V]) write(key string, v V, now time.Time) {
	s.mu.Lock()
	s.m[key] = entry[V]{value: v, cachedAt: now}
	s.mu.Unlock()
}

func (s *store[V]) invalidate(key string) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}
