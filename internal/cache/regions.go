package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/config"
	"github.com/jafarshop/storeadmin/internal/domain"
)

const regionKeyPrefix = "regions"

// RegionCache keeps per-country region lists in Redis
type RegionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRegionCache creates a region cache on an existing client. The caller
// keeps ownership of the client.
func NewRegionCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RegionCache {
	return &RegionCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func regionKey(country string) string {
	return fmt.Sprintf("%s:%s", regionKeyPrefix, strings.ToUpper(country))
}

// Get returns the cached regions of a country. ok is false on a miss.
func (c *RegionCache) Get(ctx context.Context, country string) (regions []domain.Region, ok bool, err error) {
	key := regionKey(country)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for regions", zap.String("country", country))
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get regions from cache",
			zap.String("country", country),
			zap.Error(err))
		return nil, false, fmt.Errorf("failed to get regions from cache: %w", err)
	}

	if err := json.Unmarshal(data, &regions); err != nil {
		c.logger.Error("Failed to unmarshal cached regions",
			zap.String("country", country),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false, fmt.Errorf("failed to unmarshal regions: %w", err)
	}

	return regions, true, nil
}

// Set stores the regions of a country. An empty list is cached too so that
// countries without subdivisions are not looked up again.
func (c *RegionCache) Set(ctx context.Context, country string, regions []domain.Region) error {
	if regions == nil {
		regions = []domain.Region{}
	}

	data, err := json.Marshal(regions)
	if err != nil {
		return fmt.Errorf("failed to marshal regions: %w", err)
	}

	if err := c.client.Set(ctx, regionKey(country), data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to cache regions",
			zap.String("country", country),
			zap.Error(err))
		return fmt.Errorf("failed to set regions in cache: %w", err)
	}

	return nil
}
