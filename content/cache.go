// ABOUTME: In-memory cache of rendered markdown keyed by the sha256 of the markdown source.
// ABOUTME: Entries expire after a TTL, errors are never cached, and concurrent misses share one render.
package content

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RenderFunc converts markdown source to HTML.
type RenderFunc func(source []byte) ([]byte, error)

type cacheEntry struct {
	data      []byte
	createdAt time.Time
}

// Cache wraps a RenderFunc with TTL-bounded memoisation.
// A zero or negative TTL disables caching entirely.
type Cache struct {
	renderFn RenderFunc
	ttl      time.Duration
	entries  map[string]*cacheEntry
	mu       sync.RWMutex
	group    singleflight.Group
}

// NewCache creates a Cache around renderFn.
func NewCache(renderFn RenderFunc, ttl time.Duration) *Cache {
	return &Cache{
		renderFn: renderFn,
		ttl:      ttl,
		entries:  make(map[string]*cacheEntry),
	}
}

// Render returns the HTML for source, serving a cached copy while it is fresh.
func (c *Cache) Render(source []byte) ([]byte, error) {
	if c.ttl <= 0 {
		return c.renderFn(source)
	}

	key := cacheKey(source)

	c.mu.RLock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.createdAt) < c.ttl {
		data := entry.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		data, err := c.renderFn(source)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = &cacheEntry{data: data, createdAt: time.Now()}
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Len returns the number of entries, including expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func cacheKey(source []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(source))
}
