// Package authcache provides a time-bounded, single-flight memoizing cache
// for expensive, rate-limited lookups.
//
// When many concurrent callers ask for the same key (a page load fanning out
// twenty handlers that all need the same organization's authorization
// context), a cold cache naively means twenty identical upstream calls. A
// Cache coalesces them: exactly one fetch runs per key at a time, every
// concurrent caller shares its result, and successful results are served
// from memory until the TTL elapses.
//
//	cache, err := authcache.New[*OrgAuth](authcache.WithTTL(30 * time.Second))
//	if err != nil {
//		// invalid configuration
//	}
//	auth, err := cache.Get(ctx, orgSlug, func() (*OrgAuth, error) {
//		return client.LookupOrg(orgSlug)
//	})
//
// Errors are never cached: a failed fetch is reported identically to every
// coalesced caller and the key stays cold, so the next call retries. A caller
// whose context is cancelled while waiting detaches without disturbing the
// shared fetch. Invalidate removes a key immediately, for use when upstream
// state is known to have changed (credential rotation, logout).
//
// Operations on distinct keys proceed fully independently: a slow fetch for
// one key never blocks reads or fetches for another.
package authcache
