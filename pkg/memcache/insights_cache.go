// pkg/memcache/insights_cache.go
package memcache

import (
	"sync"
	"time"
)

// InsightsCache is a small in-process TTL cache for destination insights.
// Insights change slowly, so re-asking the model for the same city within
// the TTL is wasted quota.
type InsightsCache[T any] struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]entry[T]
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func NewInsightsCache[T any](ttl time.Duration) *InsightsCache[T] {
	return &InsightsCache[T]{
		ttl:  ttl,
		data: make(map[string]entry[T]),
	}
}

func (c *InsightsCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *InsightsCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = entry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}

	// Opportunistic cleanup to keep the map bounded.
	if len(c.data) > 1000 {
		now := time.Now()
		for k, e := range c.data {
			if now.After(e.expiresAt) {
				delete(c.data, k)
			}
		}
	}
}
