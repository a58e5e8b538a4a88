package cache

import (
	"sync"
	"time"
)

type entry struct {
	expiresAt time.Time
	value     any
}

// Cache is a process-wide TTL map. Entries are evicted lazily on the read
// that finds them expired; there is no capacity bound and no sweeper.
type Cache struct {
	mu    sync.Mutex
	store map[string]entry
}

func New() *Cache {
	return &Cache{store: make(map[string]entry)}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.store[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.store, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. Setting an existing key resets its expiry.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = entry{expiresAt: time.Now().Add(ttl), value: value}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}
