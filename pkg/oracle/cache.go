package oracle

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Cache bounds for chatbot answers.
const (
	DefaultCacheCapacity = 50
	DefaultCacheTTL      = 5 * time.Minute
)

type cacheEntry struct {
	key      string
	response string
	cachedAt time.Time
}

// ResponseCache memoizes chatbot answers keyed by normalized question text.
// Eviction keeps the newest entries by cache time: every Set moves the entry
// to the front of the insertion order, and overflow drops from the back in
// O(1). Lookups never refresh an entry's position, so this is bounded by
// set-time, not access. Entries past the TTL are treated as absent on lookup
// but are not actively purged; they age out of the back of the list.
type ResponseCache struct {
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List
	mu       sync.Mutex
	now      func() time.Time
}

// CacheOption configures a ResponseCache.
type CacheOption func(*ResponseCache)

// WithCacheCapacity overrides the entry bound. Non-positive values are ignored.
func WithCacheCapacity(n int) CacheOption {
	return func(c *ResponseCache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithCacheTTL overrides the freshness window. Non-positive values are ignored.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *ResponseCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *ResponseCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewResponseCache returns an empty cache with the default bounds.
func NewResponseCache(opts ...CacheOption) *ResponseCache {
	c := &ResponseCache{
		capacity: DefaultCacheCapacity,
		ttl:      DefaultCacheTTL,
		items:    make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// normalizeQuestion produces the cache key: NFC-normalized, trimmed,
// lowercased question text, so trivially rephrased whitespace or composed
// unicode variants hit the same entry.
func normalizeQuestion(question string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(question)))
}

// Get returns the cached answer for question if one exists and is younger
// than the TTL. Stale entries report a miss without being evicted.
func (c *ResponseCache) Get(question string) (string, bool) {
	key := normalizeQuestion(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return "", false
	}

	entry := elem.Value.(*cacheEntry)
	if c.now().Sub(entry.cachedAt) >= c.ttl {
		return "", false
	}
	return entry.response, true
}

// Set stores the answer under the normalized question with the current
// timestamp. When the bound is exceeded the oldest-set entry is dropped.
func (c *ResponseCache) Set(question, response string) {
	key := normalizeQuestion(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.response = response
		entry.cachedAt = c.now()
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&cacheEntry{
		key:      key,
		response: response,
		cachedAt: c.now(),
	})
	c.items[key] = elem

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
}

// Len returns the number of stored entries, stale ones included.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
