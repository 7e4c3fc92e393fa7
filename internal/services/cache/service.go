// Package cache provides the projection report cache. Reports depend on the request,
// the calendar year and the curve generation; callers fold all three into the key,
// so any backend may serve an entry until the TTL expires.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/models"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// NewReportCache creates the report cache selected by config
func NewReportCache(ctx context.Context, config common.CacheConfig, logger arbor.ILogger) (interfaces.ReportCache, error) {
	ttl := config.TTLDuration()

	switch config.Backend {
	case BackendNone:
		logger.Info().Msg("Report cache disabled")
		return NoopCache{}, nil
	case BackendRedis:
		cache, err := NewRedisCache(ctx, config, ttl, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("addr", config.RedisAddr).Str("ttl", ttl.String()).Msg("Redis report cache initialized")
		return cache, nil
	case BackendMemory, "":
		logger.Info().Str("ttl", ttl.String()).Msg("Memory report cache initialized")
		return NewMemoryCache(ttl, time.Now), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", config.Backend)
	}
}

// NoopCache never stores anything
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string) (*models.ProjectionReport, bool) {
	return nil, false
}

func (NoopCache) Set(ctx context.Context, key string, report *models.ProjectionReport) error {
	return nil
}

func (NoopCache) Close() error {
	return nil
}
