package artifactcache

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Factory produces an artifact locator for a logical key on a cache miss.
type Factory func(ctx context.Context) (string, error)

// Cache maps logical entity names (meal or exercise names) to the last-known
// artifact locator for the session. Entries never expire and are never
// evicted; Replace overwrites in place after an edit. Concurrent requests
// for the same key share a single in-flight generation.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
	group   singleflight.Group
	log     zerolog.Logger
}

// New creates an empty session cache.
func New(log zerolog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]string),
		log:     log.With().Str("component", "artifactcache").Logger(),
	}
}

// GetOrCreate returns the cached locator for key, invoking factory at most
// once per key across all concurrent callers. A second request while
// generation is in flight observes the outcome of the in-flight call.
// Factories that return an empty locator do not create an entry, so a later
// request may retry generation.
func (c *Cache) GetOrCreate(ctx context.Context, key string, factory Factory) (string, error) {
	c.mu.RLock()
	locator, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return locator, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: a Replace may have landed meanwhile.
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		created, err := factory(ctx)
		if err != nil {
			return "", err
		}
		if created == "" {
			c.log.Warn().Str("key", key).Msg("factory produced empty locator, not caching")
			return "", nil
		}

		c.mu.Lock()
		c.entries[key] = created
		c.mu.Unlock()
		return created, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Replace overwrites the cached locator for key unconditionally. The caller
// is responsible for propagating the new locator into every domain object
// that embedded the old one.
func (c *Cache) Replace(key, locator string) {
	c.mu.Lock()
	c.entries[key] = locator
	c.mu.Unlock()
}

// Lookup returns the cached locator for key without triggering generation.
func (c *Cache) Lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	locator, ok := c.entries[key]
	return locator, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
