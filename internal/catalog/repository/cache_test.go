package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/tair/pos-engine/internal/catalog/domain"
)

func TestListingKey(t *testing.T) {
	f := domain.ProductFilter{CategoryID: 2, Search: "latte", Limit: 50}

	assert.Equal(t, ListingKey(1, f), ListingKey(1, f))
	assert.NotEqual(t, ListingKey(1, f), ListingKey(2, f))

	other := f
	other.Offset = 50
	assert.NotEqual(t, ListingKey(1, f), ListingKey(1, other))
	assert.Contains(t, ListingKey(3, f), "catalog:products:v3:")
}

func TestRedisListingCache_UnavailableIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewRedisListingCache(client, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, domain.ProductFilter{}, []domain.Product{{ID: 1, Name: "Latte"}})
	cache.Invalidate(ctx)

	products, ok := cache.Get(ctx, domain.ProductFilter{})
	assert.False(t, ok)
	assert.Nil(t, products)
}
