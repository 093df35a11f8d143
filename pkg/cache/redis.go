package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"
)

func InitRedis(config utils.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established")
	return rdb, nil
}

// ListingCache keeps listings under listing:<id>. A nil client turns every
// call into a miss or no-op.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewListingCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *ListingCache {
	return &ListingCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("cache", "listing")),
	}
}

func listingKey(id uuid.UUID) string {
	return fmt.Sprintf("listing:%s", id)
}

// Get returns the cached listing, or nil on a miss. Redis errors are logged
// and reported as misses.
func (c *ListingCache) Get(ctx context.Context, id uuid.UUID) *entity.Listing {
	if c == nil || c.rdb == nil {
		return nil
	}

	data, err := c.rdb.Get(ctx, listingKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		c.log.Warn("Cache read failed", zap.Error(err), zap.String("listing_id", id.String()))
		return nil
	}

	var listing entity.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		c.log.Warn("Cache entry corrupt", zap.Error(err), zap.String("listing_id", id.String()))
		return nil
	}
	return &listing
}

func (c *ListingCache) Set(ctx context.Context, listing *entity.Listing) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(listing)
	if err != nil {
		c.log.Warn("Cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, listingKey(listing.ID), data, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err), zap.String("listing_id", listing.ID.String()))
	}
}

func (c *ListingCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, listingKey(id)).Err(); err != nil {
		c.log.Warn("Cache invalidate failed", zap.Error(err), zap.String("listing_id", id.String()))
	}
}
