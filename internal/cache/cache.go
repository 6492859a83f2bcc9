// Package cache provides a TTL cache for expensive external lookups.
//
// Entries are replaced on write and checked for staleness on read; there is
// no background eviction, so the map grows with the set of distinct keys.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    string
	cachedAt time.Time
}

// Cache maps normalized keys to string payloads with a fixed TTL.
// Callers are responsible for normalizing keys consistently.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// New returns an empty cache whose entries go stale after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key if it was stored less than the TTL
// before now.
func (c *Cache) Get(key string, now time.Time) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if now.Sub(e.cachedAt) >= c.ttl {
		return "", false
	}
	return e.value, true
}

// Put stores value under key, unconditionally replacing any previous entry.
func (c *Cache) Put(key, value string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, cachedAt: now}
}

// Len returns the number of stored entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
