package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Entry represents a cached item with expiration
type Entry[V any] struct {
	Value      V
	Expiration time.Time
	added      uint64
}

// IsExpired checks if the entry has expired
func (e *Entry[V]) IsExpired(now time.Time) bool {
	if e.Expiration.IsZero() {
		return false // Never expires
	}
	return now.After(e.Expiration)
}

// Cache is a thread-safe in-memory cache with TTL support. Expired entries
// are dropped on access; when full, the entry added first is evicted.
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*Entry[V]
	maxItems int
	ttl      time.Duration
	seq      uint64
	now      func() time.Time

	// Metrics
	hits      int64
	misses    int64
	evictions int64
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	TTL      time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems: 1024,
		TTL:      10 * time.Minute,
	}
}

// New creates a new cache instance. A zero TTL keeps entries until they
// are evicted.
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}
	return &Cache[V]{
		items:    make(map[string]*Entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// Key returns a fixed-length cache key for arbitrary text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.items[key]
	if exists && entry.IsExpired(c.now()) {
		delete(c.items, key)
		exists = false
	}
	if !exists {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return entry.Value, true
}

// Set stores a value in the cache with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.purgeExpired(now)
		if len(c.items) >= c.maxItems {
			c.evictOldest()
		}
	}

	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	c.seq++
	c.items[key] = &Entry[V]{Value: value, Expiration: exp, added: c.seq}
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*Entry[V])
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats holds cache counters
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Size      int     `json:"size"`
	HitRate   float64 `json:"hit_rate"`
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Size: len(c.items)}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}

// GetOrSet gets a value or computes and stores it if not present. fn runs
// without the lock held, so concurrent misses may compute twice.
func (c *Cache[V]) GetOrSet(key string, fn func() (V, error)) (V, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	val, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	c.Set(key, val)
	return val, nil
}

// evictOldest removes the entry added first (must be called with lock held)
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldest uint64

	for key, entry := range c.items {
		if oldestKey == "" || entry.added < oldest {
			oldestKey = key
			oldest = entry.added
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
		c.evictions++
	}
}

// purgeExpired removes all expired entries (must be called with lock held)
func (c *Cache[V]) purgeExpired(now time.Time) {
	for key, entry := range c.items {
		if entry.IsExpired(now) {
			delete(c.items, key)
		}
	}
}
