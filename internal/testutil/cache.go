package testutil

import (
	"context"
	"encoding/json"
	"path"
	"sort"
	"sync"
	"time"

	"bookstore-api/pkg/cache"
)

// Cache is an in-memory cache.Cache that keeps the JSON round trip of the
// Redis implementation and records every eviction.
type Cache struct {
	mu    sync.Mutex
	items map[string][]byte

	// Deleted and Patterns record Delete keys and DeletePattern globs in call order.
	Deleted  []string
	Patterns []string
}

var _ cache.Cache = (*Cache)(nil)

func NewCache() *Cache {
	return &Cache{items: make(map[string][]byte)}
}

// Has reports whether key is currently cached.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Keys returns the cached keys, sorted.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		c.Deleted = append(c.Deleted, k)
		delete(c.items, k)
	}
	return nil
}

// DeletePattern matches like Redis SCAN MATCH for the simple globs in use.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Patterns = append(c.Patterns, pattern)
	for k := range c.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *Cache) Ping(ctx context.Context) error { return nil }
