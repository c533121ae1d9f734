package engine

import (
	"sync"
	"time"

	"github.com/mithrel/sakura/pkg/api"
)

type cacheEntry struct {
	result api.SearchResult
	stamp  time.Time
}

// resultCache holds complete search responses keyed by request fingerprint.
// One mutex guards the map; the façade may be called from concurrent
// request handlers. Expiry is lazy: Sweep runs before each cache-enabled
// lookup, there is no background timer.
type resultCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func newResultCache() *resultCache {
	return &resultCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *resultCache) Get(key string) (api.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.result, ok
}

func (c *resultCache) Put(key string, result api.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{result: result, stamp: c.now()}
}

// Sweep drops entries older than ttl.
func (c *resultCache) Sweep(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.now().Add(-ttl)
	for key, e := range c.entries {
		if e.stamp.Before(cutoff) {
			delete(c.entries, key)
		}
	}
}

func (c *resultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
