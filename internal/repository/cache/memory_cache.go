package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

// memoryPageCache - кеш страниц в памяти процесса
type memoryPageCache struct {
	store *gocache.Cache
}

func NewMemoryPageCache(defaultTTL, cleanupInterval time.Duration) repository.PageCache {
	return &memoryPageCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *memoryPageCache) GetPage(_ context.Context, externalID string) (*domain.EnrichedPage, error) {
	v, ok := c.store.Get(pageKey(externalID))
	if !ok {
		return nil, nil
	}
	page := v.(domain.EnrichedPage)
	return &page, nil
}

func (c *memoryPageCache) SetPage(_ context.Context, page *domain.EnrichedPage, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(pageKey(page.ExternalID), *page, ttl)
	return nil
}
