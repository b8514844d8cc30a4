// Package cache provides a small, explicit, bounded key-value cache with
// TTL eviction and a max-entry cap. It is injected as a dependency (never
// a module-level singleton) so tests can control both time and size.
package cache

import (
	"sync"
	"time"
)

// TTLCache is a concurrency-safe map of string keys to arbitrary values.
// Entries expire after a fixed TTL; when the cache is full, the entry
// closest to expiry is evicted to make room. Both bounds are fixed at
// construction.
type TTLCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int

	// now is the clock seam; tests swap it for a fixed time source.
	now func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

// New returns a TTLCache holding at most maxEntries values for at most
// ttl each. Non-positive arguments fall back to 1 minute / 128 entries.
func New(ttl time.Duration, maxEntries int) *TTLCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	return &TTLCache{
		entries:    make(map[string]entry, maxEntries),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// WithClock replaces the time source and returns the cache, for tests.
func (c *TTLCache) WithClock(now func() time.Time) *TTLCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the live value for key, if any. Expired entries are removed
// on access.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the cache's TTL. When at capacity it
// first drops every expired entry, then, if still full, evicts the entry
// closest to expiry.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.sweepLocked(now)
		if len(c.entries) >= c.maxEntries {
			c.evictSoonestLocked()
		}
	}
	c.entries[key] = entry{value: value, expiresAt: now.Add(c.ttl)}
}

// Len reports the number of stored entries, including any not yet swept.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTLCache) sweepLocked(now time.Time) {
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

func (c *TTLCache) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expiresAt.Before(soonest) {
			victim, soonest, first = k, e.expiresAt, false
		}
	}
	if !first {
		delete(c.entries, victim)
	}
}
