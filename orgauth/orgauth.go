// Package orgauth resolves an organization's authorization context (user
// identity, role, and API key) through a time-bounded single-flight cache,
// so that a burst of handlers needing the same org's credentials costs one
// upstream lookup instead of one per handler.
package orgauth

import (
	"context"

	"github.com/opaline-labs/authcache"
)

// Context is the authorization bundle resolved for an organization.
type Context struct {
	UserID string
	OrgID  string
	Role   string
	APIKey string
}

// Fetcher performs the upstream identity lookup for an organization slug.
// Implementations own their deadline and retry policy; the resolver imposes
// neither.
type Fetcher interface {
	FetchOrgAuth(ctx context.Context, slug string) (Context, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, slug string) (Context, error)

func (f FetcherFunc) FetchOrgAuth(ctx context.Context, slug string) (Context, error) {
	return f(ctx, slug)
}

// Resolver caches upstream authorization lookups per organization slug.
// Concurrent resolves for the same slug share one upstream call; results
// are served from memory until the cache TTL elapses.
type Resolver struct {
	cache   *authcache.Cache[Context]
	fetcher Fetcher
}

// NewResolver binds f to a new cache. Options are passed through to
// authcache.New.
func NewResolver(f Fetcher, opts ...authcache.Option) (*Resolver, error) {
	c, err := authcache.New[Context](opts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{cache: c, fetcher: f}, nil
}

// Resolve returns the organization's authorization context, from cache when
// fresh. ctx governs only this caller's wait.
func (r *Resolver) Resolve(ctx context.Context, slug string) (Context, error) {
	return r.cache.Get(ctx, slug, func() (Context, error) {
		// The lookup is shared by every coalesced caller, so it must not
		// die with the caller that happened to trigger it.
		return r.fetcher.FetchOrgAuth(context.WithoutCancel(ctx), slug)
	})
}

// Invalidate drops the cached context for slug. Call on logout or when the
// organization's credentials rotate.
func (r *Resolver) Invalidate(slug string) {
	r.cache.Invalidate(slug)
}
