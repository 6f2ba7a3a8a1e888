package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

const pageKeyPrefix = "page:"

type redisPageCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPageCache хранит страницы как JSON под ключом page:<externalID>
func NewRedisPageCache(client *redis.Client, logger *zap.Logger) repository.PageCache {
	return &redisPageCache{
		client: client,
		logger: logger,
	}
}

func pageKey(externalID string) string {
	return pageKeyPrefix + externalID
}

func (r *redisPageCache) GetPage(ctx context.Context, externalID string) (*domain.EnrichedPage, error) {
	key := pageKey(externalID)

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var page domain.EnrichedPage
	if err := json.Unmarshal(val, &page); err != nil {
		return nil, fmt.Errorf("cache decode error for %s: %w", key, err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return &page, nil
}

func (r *redisPageCache) SetPage(ctx context.Context, page *domain.EnrichedPage, ttl time.Duration) error {
	key := pageKey(page.ExternalID)

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("cache encode error for %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}
