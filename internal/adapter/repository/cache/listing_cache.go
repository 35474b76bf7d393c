package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/renthome/renter-service/internal/renting/usecase"
)

const (
	catalogKey = "listings:all"
	catalogTTL = 1 * time.Hour
)

// ListingCache keeps the rendered catalog in Redis so repeated browse
// requests skip Mongo and image re-encoding.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(addr string) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr, // e.g., "localhost:6379"
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &ListingCache{client: client}, nil
}

// GetCatalog returns the cached catalog, or nil on a cache miss.
func (c *ListingCache) GetCatalog(ctx context.Context) ([]usecase.ListingView, error) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	var views []usecase.ListingView
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *ListingCache) SetCatalog(ctx context.Context, views []usecase.ListingView) error {
	data, err := json.Marshal(views)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, data, catalogTTL).Err()
}

// Invalidate drops the catalog after any listing mutation.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}

func (c *ListingCache) Close() error {
	return c.client.Close()
}
