// Package cache provides the time-boxed memoization used by the market data
// service. The cache avoids redundant upstream calls within a session; it is
// not a correctness mechanism, and stale reads within the TTL are acceptable.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLCache is a process-wide cache with a fixed TTL per instance. One
// instance is created per data kind (quotes, dividend history) so each kind
// carries its own expiry, injected into the consumers rather than held as
// ambient global state.
type TTLCache struct {
	c *gocache.Cache
}

// New creates a TTLCache whose entries expire after ttl. Expired entries are
// purged in the background at twice the TTL.
func New(ttl time.Duration) *TTLCache {
	return &TTLCache{
		c: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached value for key, or ok=false on a miss.
func (t *TTLCache) Get(key string) (any, bool) {
	return t.c.Get(key)
}

// Set stores value under key with the cache's default TTL.
func (t *TTLCache) Set(key string, value any) {
	t.c.Set(key, value, gocache.DefaultExpiration)
}

// Flush removes all entries. Used by tests and the manual re-sync path.
func (t *TTLCache) Flush() {
	t.c.Flush()
}
