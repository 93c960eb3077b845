package authcache

import "time"

// Defaults applied by New when the corresponding option is not given.
const (
	DefaultTTL              = 30 * time.Second
	DefaultSlowFetchWarning = 5 * time.Second
)

type config struct {
	ttl      time.Duration
	slowWarn time.Duration
	observer Observer
}

// Option configures a Cache created by New.
type Option func(*config)

// WithTTL sets how long a stored value is served before a new fetch is
// triggered. The TTL applies to every key; it must be positive.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		c.ttl = d
	}
}

// WithSlowFetchWarning sets the threshold after which a still-running fetch
// emits EventSlowFetch. Zero disables the warning. Pick something well above
// the upstream's expected p99 latency.
func WithSlowFetchWarning(d time.Duration) Option {
	return func(c *config) {
		c.slowWarn = d
	}
}

// WithObserver attaches an Observer that receives lifecycle events for the
// lifetime of the cache.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}
