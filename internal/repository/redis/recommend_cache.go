package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecommendCache holds recently computed recommendation ID lists per user.
// The behavior matrix is rebuilt on every request, so a short TTL keeps
// results fresh while absorbing repeated page loads.
type RecommendCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendCache(client *redis.Client, ttl time.Duration) *RecommendCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RecommendCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RecommendCache) key(userID uint, topN int) string {
	return fmt.Sprintf("recommend:user:%d:top:%d", userID, topN)
}

// Get returns the cached ranking and whether it was present. Redis errors
// are reported as a miss with the error attached.
func (c *RecommendCache) Get(ctx context.Context, userID uint, topN int) ([]uint64, bool, error) {
	val, err := c.client.Get(ctx, c.key(userID, topN)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read recommend cache: %w", err)
	}

	var ids []uint64
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached recommendation: %w", err)
	}

	return ids, true, nil
}

func (c *RecommendCache) Set(ctx context.Context, userID uint, topN int, ids []uint64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation: %w", err)
	}

	if err := c.client.Set(ctx, c.key(userID, topN), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write recommend cache: %w", err)
	}

	return nil
}
