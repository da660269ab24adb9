// Package cache implements the shared "TTL + single-flight fill"
// abstraction backing §4.3's display-name cache and §4.8's two
// response caches. There is one implementation here instead of three
// hand-rolled copies.
package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// TTLCache memoizes the result of a Fill function per key, for up to
// TTL. Concurrent calls for the same key that miss the cache collapse
// into a single Fill call via singleflight.
type TTLCache[K comparable, V any] struct {
	store *lru.LRU[K, V]
	group singleflight.Group
	ttl   time.Duration
}

// New constructs a TTLCache. size bounds the number of distinct keys
// retained; ttl of 0 means entries never expire (matching §4.3's
// unbounded, non-expiring display-name cache) and size of 0 means
// unbounded capacity.
func New[K comparable, V any](size int, ttl time.Duration) *TTLCache[K, V] {
	if size < 0 {
		size = 0 // expirable.NewLRU treats 0 as no size limit
	}

	return &TTLCache[K, V]{
		store: lru.NewLRU[K, V](size, nil, ttl),
		ttl:   ttl,
	}
}

// GetOrFill returns the cached value for key, or calls fill exactly
// once across any number of concurrently-blocked callers, caches its
// result (on success only), and returns it.
func (c *TTLCache[K, V]) GetOrFill(ctx context.Context, key K, keyStr string, fill func(context.Context) (V, error)) (V, error) {
	if v, ok := c.store.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(keyStr, func() (interface{}, error) {
		// Re-check: another goroutine may have filled it while we
		// waited to enter the singleflight group.
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}

		v, err := fill(ctx)
		if err != nil {
			return v, err
		}

		c.store.Add(key, v)

		return v, nil
	})

	return v.(V), err
}

// Set writes a value directly, bypassing Fill, for a caller that
// already computed a value through some other path and wants to prime
// the cache.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.store.Add(key, value)
}

// Invalidate removes key, if present, so the next GetOrFill refills it.
// Nothing in the service calls this: the caches in §4.8 have no
// explicit invalidation path.
func (c *TTLCache[K, V]) Invalidate(key K) {
	c.store.Remove(key)
}

// Len reports the number of cached entries, for tests and metrics.
func (c *TTLCache[K, V]) Len() int {
	return c.store.Len()
}
