package ttlcache

import (
	"fmt"
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a string-keyed in-memory store with per-entry absolute expiration.
// Expired entries are evicted lazily on Get; ClearExpired sweeps the rest.
type Cache[T any] struct {
	mu         sync.Mutex
	entries    map[string]entry[T]
	defaultTTL time.Duration
}

func New[T any](defaultTTL time.Duration) *Cache[T] {
	return &Cache[T]{
		entries:    make(map[string]entry[T]),
		defaultTTL: defaultTTL,
	}
}

// Get returns the stored value if present and not expired. An expired entry
// is deleted on access; callers cannot distinguish "expired" from "never set".
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}

	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}

	return e.value, true
}

// Set stores value under key with the cache's default TTL, overwriting any
// existing entry.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[T])
}

// ClearExpired removes every entry past its expiration. Get self-evicts, so
// this is periodic maintenance rather than a correctness requirement.
func (c *Cache[T]) ClearExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if !e.expiresAt.After(now) {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// BuildKey composes the cache key for a weather lookup. Coordinates are
// rounded to 3 decimal places (~111m) so repeated queries for the same spot
// hit the same entry regardless of floating-point jitter.
func BuildKey(kind string, provider string, latitude, longitude float64) string {
	return fmt.Sprintf("%s:%s:%.3f:%.3f", kind, provider, latitude, longitude)
}
