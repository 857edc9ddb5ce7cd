package cache

import (
	"context"
	"time"
)

// Cache is the contract repositories use for cache-aside reads.
// Implementations: Redis, and a no-op used when caching is disabled.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found=false means a miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern, e.g. "book:*".
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}

// Noop is a Cache that never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) DeletePattern(context.Context, string) error { return nil }
func (Noop) Ping(context.Context) error { return nil }
