// Package cache holds the per-user project list in Redis so the dashboard
// read path skips Postgres. The policy is invalidate-then-refetch: every
// successful mutation deletes the key and the next list repopulates it.
// Entries are never patched in place.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/safra-cheia/budget-backend/internal/projects/domain"
)

const listKeyPrefix = "projects:user:" // projects:user:{owner_id}

type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewListCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *ListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached list and whether it was present. Cache failures
// degrade to a miss: the caller falls back to the database.
func (c *ListCache) Get(ctx context.Context, ownerID string) ([]domain.Project, bool) {
	data, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("project list cache read failed", "owner_id", ownerID, "err", err)
		}
		return nil, false
	}

	var projects []domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		c.log.Warn("project list cache entry corrupt, dropping", "owner_id", ownerID, "err", err)
		c.Invalidate(ctx, ownerID)
		return nil, false
	}
	return projects, true
}

func (c *ListCache) Set(ctx context.Context, ownerID string, projects []domain.Project) {
	data, err := json.Marshal(projects)
	if err != nil {
		c.log.Warn("project list cache marshal failed", "owner_id", ownerID, "err", err)
		return
	}
	if err := c.client.Set(ctx, c.key(ownerID), data, c.ttl).Err(); err != nil {
		c.log.Warn("project list cache write failed", "owner_id", ownerID, "err", err)
	}
}

// Invalidate drops the user's cached list. Called after every successful
// project or transaction mutation.
func (c *ListCache) Invalidate(ctx context.Context, ownerID string) {
	if err := c.client.Del(ctx, c.key(ownerID)).Err(); err != nil {
		c.log.Warn("project list cache invalidation failed", "owner_id", ownerID, "err", err)
	}
}

func (c *ListCache) key(ownerID string) string {
	return listKeyPrefix + ownerID
}
