package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/velstra/streetwear-shop/internal/config"
	"github.com/velstra/streetwear-shop/internal/domain/models"
)

const (
	productKeyPrefix = "catalog:product:"
	categoriesKey    = "catalog:categories"
	collectionsKey   = "catalog:collections"
)

// CatalogCache keeps hot catalog reads out of postgres. A cache miss or a
// redis failure is never an error for the caller; reads fall through to the
// database and misses are repopulated on the way back.
type CatalogCache struct {
	log *slog.Logger
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogCache(log *slog.Logger, rdb *redis.Client, cfg config.RedisConfig) *CatalogCache {
	return &CatalogCache{log: log, rdb: rdb, ttl: cfg.TTL}
}

// NewRedisClient connects and pings; the server refuses to start on a
// misconfigured cache rather than degrading silently.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Address,
		DB:   cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (c *CatalogCache) GetProduct(ctx context.Context, slug string) (*models.Product, bool) {
	data, err := c.rdb.Get(ctx, productKeyPrefix+slug).Result()
	if err != nil {
		return nil, false
	}
	var p models.Product
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		c.log.Warn("failed to unmarshal cached product", slog.Any("error", err))
		return nil, false
	}
	return &p, true
}

func (c *CatalogCache) SetProduct(ctx context.Context, p *models.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		c.log.Warn("failed to marshal product for cache", slog.Any("error", err))
		return
	}
	if err := c.rdb.Set(ctx, productKeyPrefix+p.Slug, data, c.ttl).Err(); err != nil {
		c.log.Warn("failed to cache product", slog.Any("error", err))
	}
}

func (c *CatalogCache) GetCategories(ctx context.Context) ([]*models.Category, bool) {
	data, err := c.rdb.Get(ctx, categoriesKey).Result()
	if err != nil {
		return nil, false
	}
	var categories []*models.Category
	if err := json.Unmarshal([]byte(data), &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (c *CatalogCache) SetCategories(ctx context.Context, categories []*models.Category) {
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, categoriesKey, data, c.ttl).Err(); err != nil {
		c.log.Warn("failed to cache categories", slog.Any("error", err))
	}
}

func (c *CatalogCache) GetCollections(ctx context.Context) ([]*models.Collection, bool) {
	data, err := c.rdb.Get(ctx, collectionsKey).Result()
	if err != nil {
		return nil, false
	}
	var collections []*models.Collection
	if err := json.Unmarshal([]byte(data), &collections); err != nil {
		return nil, false
	}
	return collections, true
}

func (c *CatalogCache) SetCollections(ctx context.Context, collections []*models.Collection) {
	data, err := json.Marshal(collections)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, collectionsKey, data, c.ttl).Err(); err != nil {
		c.log.Warn("failed to cache collections", slog.Any("error", err))
	}
}

// Invalidate drops every catalog key after an admin write. Losing the whole
// cache on any write is acceptable at this catalog size.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, "catalog:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("failed to scan cache keys for invalidation", slog.Any("error", err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("failed to invalidate catalog cache", slog.Any("error", err))
	}
}
