package authcache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc produces the value for a key on a cache miss. It is invoked at
// most once per coalesced window; after that window closes it may be invoked
// again. It should enforce its own deadline against the upstream it talks
// to, because the cache imposes none.
type FetchFunc[V any] func() (V, error)

// Cache memoizes the results of an expensive lookup for a fixed TTL and
// coalesces concurrent fetches for the same key onto a single execution.
// At any instant a key is fresh (served from the store), fetching (served by
// waiting on the in-flight call), or cold.
//
// A Cache must be created with New. It is safe for concurrent use.
type Cache[V any] struct {
	group    singleflight.Group
	store    *store[V]
	slowWarn time.Duration
	observer Observer
}

// New creates a Cache. It returns an error only for invalid configuration,
// such as a non-positive TTL.
func New[V any](opts ...Option) (*Cache[V], error) {
	cfg := config{
		ttl:      DefaultTTL,
		slowWarn: DefaultSlowFetchWarning,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ttl <= 0 {
		return nil, fmt.Errorf("authcache: ttl must be positive, got %v", cfg.ttl)
	}
	if cfg.slowWarn < 0 {
		return nil, fmt.Errorf("authcache: slow fetch warning threshold must not be negative, got %v", cfg.slowWarn)
	}
	return &Cache[V]{
		store:    newStore[V](cfg.ttl),
		slowWarn: cfg.slowWarn,
		observer: cfg.observer,
	}, nil
}

// Get returns the value for key, fetching it with fetch if the store has no
// fresh entry. Concurrent callers for the same key share a single in-flight
// fetch and receive an identical result, including an identical error.
// Errors are not cached.
//
// ctx governs only this caller's wait: if it is cancelled, Get returns
// ctx.Err() and the caller detaches, while the shared fetch keeps running
// for the remaining waiters and still populates the store on success.
func (c *Cache[V]) Get(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	// Fast path: fresh entry, no suspension, no registry access.
	if v, ok := c.store.read(key, time.Now()); ok {
		c.emit(EventData{Event: EventHit, Key: key})
		return v, nil
	}

	// Slow path: the group is the atomic check-and-register point. Exactly
	// one caller per key runs the fetch; everyone else attaches to it.
	// DoChan rather than Do so a cancelled waiter can walk away without
	// tearing down the shared call.
	ch := c.group.DoChan(key, func() (any, error) {
		return c.fetch(key, fetch)
	})

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.emit(EventData{Event: EventCoalesced, Key: key})
		}
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// fetch runs inside the singleflight call. The store write happens before
// the flight closes, so a caller arriving right after completion sees a
// fresh entry instead of starting another fetch.
func (c *Cache[V]) fetch(key string, fn FetchFunc[V]) (val any, err error) {
	// The previous flight may have landed between this caller's store read
	// and its registration in the group.
	if v, ok := c.store.read(key, time.Now()); ok {
		return v, nil
	}

	c.emit(EventData{Event: EventMiss, Key: key})

	if c.slowWarn > 0 {
		t := time.AfterFunc(c.slowWarn, func() {
			c.emit(EventData{Event: EventSlowFetch, Key: key, Elapsed: c.slowWarn})
		})
		defer t.Stop()
	}

	// A panicking fetch must still resolve the flight, or every future
	// caller for this key would wait on a call nobody settles.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("authcache: fetch for %q panicked: %v", key, r)
			c.emit(EventData{Event: EventFetchError, Key: key, Err: err})
		}
	}()

	v, err := fn()
	if err != nil {
		// A failed fetch must not poison the store. The key stays cold and
		// the next caller retries.
		c.emit(EventData{Event: EventFetchError, Key: key, Err: err})
		return nil, err
	}

	c.store.write(key, v, time.Now())
	return v, nil
}

// Invalidate removes the entry for key immediately. It does not interrupt an
// in-flight fetch for the key; a fetch already past its store write may
// still deliver the removed value to its own waiters.
func (c *Cache[V]) Invalidate(key string) {
	c.store.invalidate(key)
	c.emit(EventData{Event: EventInvalidate, Key: key})
}

func (c *Cache[V]) emit(d EventData) {
	if c.observer == nil {
		return
	}
	c.observer.On(d)
}
