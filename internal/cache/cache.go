package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"league-history-service/internal/metrics"
)

type entry struct {
	value   any
	expires time.Time
}

// Cache memoizes factory results per key with at-most-one in-flight factory
// invocation per key. Concurrent callers for the same key share the pending
// call. Failed factories are never stored, so the next caller retries
// cleanly. TTL entries expire lazily on access, not via timers.
//
// Instances are constructed once at process start and passed by reference;
// there is no package-level cache.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	group    singleflight.Group
	recorder *metrics.Recorder
	now      func() time.Time
}

// New constructs an empty Cache. The recorder may be nil.
func New(recorder *metrics.Recorder) *Cache {
	return &Cache{
		entries:  make(map[string]entry),
		recorder: recorder,
		now:      time.Now,
	}
}

// GetOrSet returns the cached value for key, or invokes fn to produce it.
// A ttl <= 0 means the entry lives for the process lifetime.
func (c *Cache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.lookup(key); ok {
		c.recordLookup(key, true)
		return v, nil
	}
	c.recordLookup(key, false)

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have stored the value while this call
		// waited on the flight group.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DropPrefix removes every entry whose key starts with prefix and reports
// how many entries were removed. Lazy TTL expiry only fires on re-access of
// the same key, so callers that rotate key schemes use this to release the
// superseded set.
func (c *Cache) DropPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Clear drops every entry, e.g. between test cases.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		c.mu.Lock()
		// Re-check under the write lock; another caller may have refreshed it.
		if cur, ok := c.entries[key]; ok && cur.expires.Equal(e.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, value any, ttl time.Duration) {
	e := entry{value: value}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// recordLookup attributes hits/misses to the key's resource class, the part
// of the key before the first colon.
func (c *Cache) recordLookup(key string, hit bool) {
	if c.recorder == nil {
		return
	}
	resource := key
	if idx := strings.IndexByte(key, ':'); idx > 0 {
		resource = key[:idx]
	}
	c.recorder.RecordCacheLookup(resource, hit)
}

// GetOrSet is the typed wrapper around Cache.GetOrSet.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.GetOrSet(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
