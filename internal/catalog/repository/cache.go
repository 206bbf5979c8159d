package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/pkg/logger"
)

const (
	cacheKeyPrefix  = "catalog:products"
	cacheVersionKey = cacheKeyPrefix + ":version"
)

// RedisListingCache caches product listings in Redis. Invalidation bumps a
// version counter that is part of every key, so stale listings simply expire.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListingCache creates a listing cache on the given client
func NewRedisListingCache(client *redis.Client, ttl time.Duration) *RedisListingCache {
	return &RedisListingCache{client: client, ttl: ttl}
}

func (c *RedisListingCache) Get(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, bool) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Listing cache read failed")
		}
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Discarding corrupt listing cache entry")
		return nil, false
	}

	logger.Debug(ctx).Str("cache_key", key).Msg("Cache hit")
	return products, true
}

func (c *RedisListingCache) Set(ctx context.Context, filter domain.ProductFilter, products []domain.Product) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache listing")
	}
}

func (c *RedisListingCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, cacheVersionKey).Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to invalidate listing cache")
	}
}

func (c *RedisListingCache) key(ctx context.Context, filter domain.ProductFilter) (string, error) {
	version, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		logger.Warn(ctx).Err(err).Msg("Listing cache version unavailable")
		return "", err
	}
	return ListingKey(version, filter), nil
}

// ListingKey derives the cache key of a listing
func ListingKey(version int64, filter domain.ProductFilter) string {
	components := fmt.Sprintf("%d:%q:%t:%d:%d",
		filter.CategoryID, filter.Search, filter.IncludeInactive, filter.Limit, filter.Offset)
	hash := sha256.Sum256([]byte(components))
	return fmt.Sprintf("%s:v%d:%s", cacheKeyPrefix, version, hex.EncodeToString(hash[:8]))
}

// NopListingCache is used when Redis is not configured
type NopListingCache struct{}

func (NopListingCache) Get(context.Context, domain.ProductFilter) ([]domain.Product, bool) {
	return nil, false
}

func (NopListingCache) Set(context.Context, domain.ProductFilter, []domain.Product) {}

func (NopListingCache) Invalidate(context.Context) {}
