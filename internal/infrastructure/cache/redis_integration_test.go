//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"bookstore-api/internal/infrastructure/cache"
)

func setupRedis(t *testing.T) *cache.RedisCache {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get endpoint: %v", err)
	}

	rc := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: endpoint}))
	t.Cleanup(func() { _ = rc.Close() })
	require.NoError(t, rc.Connect(ctx))
	return rc
}

type entry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestRedisCache(t *testing.T) {
	rc := setupRedis(t)
	ctx := context.Background()

	var miss entry
	found, err := rc.Get(ctx, "book:1", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, rc.Set(ctx, "book:1", entry{ID: 1, Title: "Go"}, time.Minute))
	require.NoError(t, rc.Set(ctx, "book:2", entry{ID: 2, Title: "Rust"}, time.Minute))
	require.NoError(t, rc.Set(ctx, "books:all", []entry{{ID: 1}, {ID: 2}}, time.Minute))
	require.NoError(t, rc.Set(ctx, "author:1", entry{ID: 1}, time.Minute))

	var got entry
	found, err = rc.Get(ctx, "book:1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entry{ID: 1, Title: "Go"}, got)

	require.NoError(t, rc.DeletePattern(ctx, "book:*"))
	for key, want := range map[string]bool{"book:1": false, "book:2": false, "books:all": true, "author:1": true} {
		n, err := rc.Client.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, want, n == 1, key)
	}

	require.NoError(t, rc.Delete(ctx, "books:all", "author:1"))
	n, err := rc.Client.DBSize(ctx).Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, rc.DeletePattern(ctx, "nothing:*"))
}

func TestRedisCacheTTL(t *testing.T) {
	rc := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "author:9", entry{ID: 9}, 15*time.Minute))
	ttl, err := rc.Client.TTL(ctx, "author:9").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 14*time.Minute)
}
