package cache

import (
	"context"
	"sync"
	"time"
)

type contentEntry struct {
	value     string
	expiresAt time.Time
}

// InMemoryContentCache implements ContentCache using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemoryContentCache struct {
	mu      sync.RWMutex
	entries map[string]contentEntry
}

// NewInMemoryContentCache creates a new in-memory content cache
func NewInMemoryContentCache() *InMemoryContentCache {
	return &InMemoryContentCache{
		entries: make(map[string]contentEntry),
	}
}

// Get returns the cached payload for a key, reporting whether it exists
func (c *InMemoryContentCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return "", false, nil
	}
	if time.Now().After(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores a payload with a TTL. Expired entries are reaped lazily
// on the next Set since daily keys roll over once per day.
func (c *InMemoryContentCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = contentEntry{
		value:     value,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryContentCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ ContentCache = (*InMemoryContentCache)(nil)
