package notification

import (
	"context"
	"errors"
	"strconv"
	"time"

	"flynext/utils"

	"github.com/go-redis/redis/v8"
)

// BadgeCache stores unread counts for a short TTL.
type BadgeCache interface {
	Get(ctx context.Context, recipientID string) (int64, bool, error)
	Set(ctx context.Context, recipientID string, count int64) error
	Invalidate(ctx context.Context, recipientID string) error
}

// RedisBadgeCache keeps counts under badge:{id}.
type RedisBadgeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisBadgeCache(client *redis.Client, ttl time.Duration) *RedisBadgeCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisBadgeCache{Client: client, TTL: ttl}
}

func badgeKey(recipientID string) string {
	return utils.BadgeCachePrefix + recipientID
}

func (c *RedisBadgeCache) Get(ctx context.Context, recipientID string) (int64, bool, error) {
	v, err := c.Client.Get(ctx, badgeKey(recipientID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (c *RedisBadgeCache) Set(ctx context.Context, recipientID string, count int64) error {
	return c.Client.Set(ctx, badgeKey(recipientID), count, c.TTL).Err()
}

func (c *RedisBadgeCache) Invalidate(ctx context.Context, recipientID string) error {
	return c.Client.Del(ctx, badgeKey(recipientID)).Err()
}
