// Package cache stores catalog enrichment lookups (details, credits) with a TTL.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a byte-oriented TTL cache. Implementations never fail the caller:
// backend errors are logged and reported as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Close() error
}

type entry struct {
	value      []byte
	expiration time.Time
}

// DefaultMaxEntries bounds the memory cache. Two keys per enriched movie.
const DefaultMaxEntries = 10000

// Sweeper is implemented by caches that need expired entries removed
// periodically. Redis expires keys itself.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

type memoryCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

// NewMemoryCache returns a process-local cache bounded by DefaultMaxEntries.
// Expired entries are dropped on read, by Sweep, and when the cache is full.
func NewMemoryCache() Cache {
	return newMemoryCache(DefaultMaxEntries, time.Now)
}

func newMemoryCache(maxEntries int, now func() time.Time) *memoryCache {
	return &memoryCache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        now,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiration) {
		c.dropIfExpired(key)
		return nil, false
	}
	return e.value, true
}

// dropIfExpired re-checks under the write lock, since a concurrent Set may
// have refreshed the key after the read.
func (c *memoryCache) dropIfExpired(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && c.now().After(e.expiration) {
		delete(c.entries, key)
	}
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	buf := make([]byte, len(value))
	copy(buf, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if c.sweepLocked() == 0 {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = entry{value: buf, expiration: c.now().Add(ttl)}
}

// Sweep removes expired entries and reports how many were dropped.
func (c *memoryCache) Sweep(context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked()
}

func (c *memoryCache) sweepLocked() int {
	now := c.now()
	n := 0
	for k, e := range c.entries {
		if now.After(e.expiration) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// evictOldestLocked drops the entry closest to expiring.
func (c *memoryCache) evictOldestLocked() {
	var (
		oldest string
		at     time.Time
		found  bool
	)
	for k, e := range c.entries {
		if !found || e.expiration.Before(at) {
			oldest, at, found = k, e.expiration, true
		}
	}
	if found {
		delete(c.entries, oldest)
	}
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

type nopCache struct{}

// NewNop returns a cache that stores nothing.
func NewNop() Cache { return nopCache{} }

func (nopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (nopCache) Set(context.Context, string, []byte, time.Duration) {}

func (nopCache) Close() error { return nil }
