package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dealerhub/dealership-service/internal/domain"
)

const (
	listingCacheKey = "vehicles:all"
	listingCacheTTL = time.Minute
)

// ListingCache caches the full listing scan in Redis. Cache failures are
// never surfaced to callers; the store remains the source of truth.
type ListingCache interface {
	Get(ctx context.Context) ([]domain.Vehicle, bool)
	Set(ctx context.Context, vehicles []domain.Vehicle)
	Invalidate(ctx context.Context)
}

type redisListingCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewListingCache builds a Redis-backed cache. A nil client yields a
// cache that always misses.
func NewListingCache(client *redis.Client, logger *zap.Logger) ListingCache {
	return &redisListingCache{client: client, logger: logger}
}

func (c *redisListingCache) Get(ctx context.Context) ([]domain.Vehicle, bool) {
	if c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, listingCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("listing cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var vehicles []domain.Vehicle
	if err := json.Unmarshal(payload, &vehicles); err != nil {
		c.logger.Warn("listing cache decode failed", zap.Error(err))
		return nil, false
	}
	return vehicles, true
}

func (c *redisListingCache) Set(ctx context.Context, vehicles []domain.Vehicle) {
	if c.client == nil {
		return
	}
	payload, err := json.Marshal(vehicles)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listingCacheKey, payload, listingCacheTTL).Err(); err != nil {
		c.logger.Warn("listing cache write failed", zap.Error(err))
	}
}

func (c *redisListingCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, listingCacheKey).Err(); err != nil {
		c.logger.Warn("listing cache invalidate failed", zap.Error(err))
	}
}
