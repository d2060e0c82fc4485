package cache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safra-cheia/budget-backend/internal/projects/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())

	return client, mr
}

func testProjects() []domain.Project {
	return []domain.Project{
		{
			PublicID:       "proj-11111-2222",
			Name:           "Irrigation",
			InvestmentGoal: 200000,
			InitialBudget:  100000,
			Spent:          15000,
			Progress:       40,
			Deadline:       "2025-12-31",
		},
	}
}

func TestListCacheRoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewListCache(client, time.Minute, slog.Default())
	ctx := context.Background()

	t.Run("miss before set", func(t *testing.T) {
		_, ok := c.Get(ctx, "owner-1")
		assert.False(t, ok)
	})

	t.Run("hit after set", func(t *testing.T) {
		c.Set(ctx, "owner-1", testProjects())

		got, ok := c.Get(ctx, "owner-1")
		require.True(t, ok)
		require.Len(t, got, 1)
		assert.Equal(t, "proj-11111-2222", got[0].PublicID)
		assert.Equal(t, int64(15000), int64(got[0].Spent))
	})

	t.Run("owners do not share entries", func(t *testing.T) {
		_, ok := c.Get(ctx, "owner-2")
		assert.False(t, ok)
	})
}

func TestListCacheInvalidate(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewListCache(client, time.Minute, slog.Default())
	ctx := context.Background()

	c.Set(ctx, "owner-1", testProjects())
	c.Invalidate(ctx, "owner-1")

	_, ok := c.Get(ctx, "owner-1")
	assert.False(t, ok)
}

func TestListCacheTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewListCache(client, time.Minute, slog.Default())
	ctx := context.Background()

	c.Set(ctx, "owner-1", testProjects())
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "owner-1")
	assert.False(t, ok)
}

func TestListCacheCorruptEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewListCache(client, time.Minute, slog.Default())
	ctx := context.Background()

	require.NoError(t, mr.Set("projects:user:owner-1", "{not json"))

	_, ok := c.Get(ctx, "owner-1")
	assert.False(t, ok)

	// The corrupt entry is dropped so the next read goes to the store.
	assert.False(t, mr.Exists("projects:user:owner-1"))
}

func TestListCacheEmptyListIsCached(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewListCache(client, time.Minute, slog.Default())
	ctx := context.Background()

	c.Set(ctx, "owner-1", []domain.Project{})

	got, ok := c.Get(ctx, "owner-1")
	require.True(t, ok)
	assert.Empty(t, got)
}
