package suggest

import (
	"sync"
	"time"

	"github.com/lumeo/reel/internal/domain/model"
	"github.com/lumeo/reel/pkg/metrics"
)

// defaultCacheTTL bounds how long a memoized suggestion computation is
// served before being recomputed.
const defaultCacheTTL = time.Hour

type cacheKey struct {
	start  int64
	end    int64
	filter string
}

type cacheEntry struct {
	suggestions []model.EventSuggestion
	storedAt    time.Time
}

// Cache memoizes suggestion computations keyed by (start, end, filter).
// Entries older than the TTL miss and are evicted lazily.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[cacheKey]cacheEntry
}

// CacheOption applies a configuration option to the Cache.
type CacheOption func(*Cache)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache creates a suggestion cache with a 1-hour default TTL.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		ttl:     defaultCacheTTL,
		now:     time.Now,
		entries: make(map[cacheKey]cacheEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached suggestions for the window, if present and fresh.
func (c *Cache) Get(start, end time.Time, filter string) ([]model.EventSuggestion, bool) {
	key := cacheKey{start: start.UnixNano(), end: end.UnixNano(), filter: filter}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		metrics.RecordCacheMiss()
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		metrics.RecordCacheMiss()
		return nil, false
	}

	metrics.RecordCacheHit()
	return entry.suggestions, true
}

// Put stores suggestions for the window.
func (c *Cache) Put(start, end time.Time, filter string, suggestions []model.EventSuggestion) {
	key := cacheKey{start: start.UnixNano(), end: end.UnixNano(), filter: filter}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{suggestions: suggestions, storedAt: c.now()}
}

// Len returns the number of cached windows, expired entries included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
