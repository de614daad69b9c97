package assets

import (
	"sync"
	"time"
)

// CacheTTL bounds how long a provider listing is reused.
const CacheTTL = 15 * time.Second

type cacheEntry struct {
	value  any
	expiry time.Time
}

// ttlCache is a small keyed cache fronting the provider. Expired
// entries are kept so callers can serve stale data when the provider
// is unreachable.
type ttlCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

// get returns the cached value, whether it is still fresh, and whether
// any entry (fresh or stale) exists.
func (c *ttlCache) get(key string, now time.Time) (value any, fresh, present bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	return e.value, now.Before(e.expiry), true
}

func (c *ttlCache) put(key string, value any, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiry: now.Add(c.ttl)}
}

func (c *ttlCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
