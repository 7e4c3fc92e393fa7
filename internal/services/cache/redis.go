package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
	"github.com/ternarybob/propcast/internal/models"
)

const redisKeyPrefix = "propcast:"

// RedisCache stores reports as JSON in Redis with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger arbor.ILogger
}

// NewRedisCache connects to Redis and verifies the connection with a PING
func NewRedisCache(ctx context.Context, config common.CacheConfig, ttl time.Duration, logger arbor.ILogger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.RedisAddr, err)
	}

	return NewRedisCacheWithClient(client, ttl, logger), nil
}

// NewRedisCacheWithClient wraps an existing client
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration, logger arbor.ILogger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.ProjectionReport, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Redis get failed, treating as cache miss")
		return nil, false
	}

	var report models.ProjectionReport
	if err := json.Unmarshal(data, &report); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Discarding unreadable cached report")
		return nil, false
	}
	return &report, true
}

func (c *RedisCache) Set(ctx context.Context, key string, report *models.ProjectionReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store report in redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
