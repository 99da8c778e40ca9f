// Package cache provides a small in-memory TTL cache, used to keep
// decoded logo images warm across repeated exports. Computed totals
// are never cached anywhere.
package cache

import (
	"sync"
	"time"
)

// Cache is the minimal TTL cache contract.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL stores values in memory with per-entry expiry. Expired entries
// are dropped lazily on read.
type TTL[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]entry[V]
}

// NewTTL constructs an empty cache.
func NewTTL[K comparable, V any]() *TTL[K, V] {
	return &TTL[K, V]{items: make(map[K]entry[V])}
}

// Get returns the cached value when present and unexpired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	var zero V
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return e.value, true
}

// Set stores a value. A non-positive ttl stores it without expiry.
func (c *TTL[K, V]) Set(key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Delete removes an entry.
func (c *TTL[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len counts the currently stored entries, expired or not.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
