// Package cache provides the bounded, time-expiring content cache used
// by the resolver and merger to avoid redundant disk reads of template
// source files.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// ContentCache caches raw file contents keyed by path. Entries expire a
// fixed TTL after insertion; reads never extend the TTL. When an insert
// would exceed capacity the entry with the nearest expiry (the oldest) is
// evicted first.
type ContentCache struct {
	entries map[string]*entry
	mutex   sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	// Statistics tracking (atomic for thread safety)
	hits      int64
	misses    int64
	evictions int64
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

const (
	// DefaultMaxSize bounds the cache to this many entries.
	DefaultMaxSize = 256
	// DefaultTTL is how long an entry stays servable after insertion.
	DefaultTTL = 5 * time.Minute
)

// New creates a content cache. Non-positive arguments fall back to the
// defaults.
func New(maxSize int, ttl time.Duration) *ContentCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ContentCache{
		entries: make(map[string]*entry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves the cached content for key. Expired entries are removed
// and reported as misses.
func (c *ContentCache) Get(key string) ([]byte, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e, exists := c.entries[key]
	if !exists {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	return e.value, true
}

// Set stores content under key with a fresh expiry. The size check,
// eviction, and insert happen under one lock so capacity is never
// exceeded.
func (c *ContentCache) Set(key string, value []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictNearestExpiry()
	}

	c.entries[key] = &entry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// evictNearestExpiry removes the entry closest to expiring. Caller holds
// the mutex.
func (c *ContentCache) evictNearestExpiry() {
	var victim string
	var victimExpiry time.Time
	for key, e := range c.entries {
		if victim == "" || e.expiresAt.Before(victimExpiry) {
			victim = key
			victimExpiry = e.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
		atomic.AddInt64(&c.evictions, 1)
	}
}

// Clear empties the cache unconditionally.
func (c *ContentCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]*entry)
}

// Len returns the number of live entries, counting expired ones until
// they are touched.
func (c *ContentCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

// Hits returns the number of cache hits.
func (c *ContentCache) Hits() int64 { return atomic.LoadInt64(&c.hits) }

// Misses returns the number of cache misses.
func (c *ContentCache) Misses() int64 { return atomic.LoadInt64(&c.misses) }

// Evictions returns the number of capacity evictions.
func (c *ContentCache) Evictions() int64 { return atomic.LoadInt64(&c.evictions) }
