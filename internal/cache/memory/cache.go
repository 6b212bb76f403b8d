package memory

import (
	"context"
	"sync"
	"time"

	"eventshare/internal/cache"
	"eventshare/internal/domain"
)

// Defaults for the share result cache.
const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 10
)

// Cache implements cache.ResultCache with a bounded in-memory map. Entries
// expire after a TTL and the oldest entries are evicted when the cache is
// full, so it never holds more than maxEntries results.
type Cache struct {
	entries    map[string]domain.CacheEntry
	mutex      sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// New creates a new in-memory result cache. Non-positive parameters fall
// back to the defaults.
func New(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		entries:    make(map[string]domain.CacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get retrieves the result stored under key. An entry past its TTL is
// removed and reported as a miss; an entry exactly at the TTL is still a hit.
func (c *Cache) Get(ctx context.Context, key string) (domain.ShareResult, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return domain.ShareResult{}, false
	}
	if c.now().Sub(entry.CreatedAt) > c.ttl {
		delete(c.entries, key)
		return domain.ShareResult{}, false
	}
	return entry.Result, true
}

// Set stores result under key. Expired entries are collected first; if the
// cache is still full after that, the oldest entries are evicted until the
// new one fits.
func (c *Cache) Set(ctx context.Context, key string, result domain.ShareResult) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if now.Sub(entry.CreatedAt) > c.ttl {
			delete(c.entries, k)
		}
	}

	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.maxEntries {
			c.evictOldest()
		}
	}

	c.entries[key] = domain.CacheEntry{
		Key:       key,
		Result:    result,
		CreatedAt: now,
	}
	return nil
}

// evictOldest removes the entry with the earliest insertion time. The caller
// holds the mutex.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, entry := range c.entries {
		if first || entry.CreatedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = entry.CreatedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

// Clear drops every cached result.
func (c *Cache) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]domain.CacheEntry)
	return nil
}

// Len returns the number of stored entries, counting entries that have
// expired but not yet been collected.
func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}

// Close is a no-op; the cache holds no external resources.
func (c *Cache) Close() error {
	return nil
}

// Ensure Cache implements the interface
var _ cache.ResultCache = (*Cache)(nil)
