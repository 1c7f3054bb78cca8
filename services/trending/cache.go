package trending

import (
	"context"
	"encoding/json"
	"time"

	"tastetrail/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	topCacheKey = "trending:top10"
	topCacheTTL = 5 * time.Minute
)

// RedisTopCache stores the top trending list in Redis as JSON.
type RedisTopCache struct {
	Client *redis.Client
	Logger *zap.Logger
}

// NewRedisTopCache creates a TopCache backed by the given Redis client.
func NewRedisTopCache(client *redis.Client, logger *zap.Logger) TopCache {
	return &RedisTopCache{Client: client, Logger: logger}
}

func (c *RedisTopCache) Get(ctx context.Context) ([]models.Shop, bool) {
	val, err := c.Client.Get(ctx, topCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn("trending cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var shops []models.Shop
	if err := json.Unmarshal([]byte(val), &shops); err != nil {
		c.Logger.Warn("trending cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return shops, true
}

func (c *RedisTopCache) Set(ctx context.Context, shops []models.Shop) {
	bytes, err := json.Marshal(shops)
	if err != nil {
		c.Logger.Warn("failed to marshal trending cache entry", zap.Error(err))
		return
	}
	if err := c.Client.Set(ctx, topCacheKey, bytes, topCacheTTL).Err(); err != nil {
		c.Logger.Warn("failed to write trending cache", zap.Error(err))
	}
}

func (c *RedisTopCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, topCacheKey).Err()
}
