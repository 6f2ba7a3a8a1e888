package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

// cachedContentRepository - ContentRepository с кешем найденных страниц.
// Промахи и ошибки сервиса не кешируются, ошибки кеша считаются промахом.
type cachedContentRepository struct {
	next   repository.ContentRepository
	cache  repository.PageCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedContentRepository(
	next repository.ContentRepository,
	cache repository.PageCache,
	ttl time.Duration,
	logger *zap.Logger,
) repository.ContentRepository {
	return &cachedContentRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *cachedContentRepository) LookupPage(ctx context.Context, externalID string) (*domain.EnrichedPage, error) {
	cached, err := r.cache.GetPage(ctx, externalID)
	if err != nil {
		r.logger.Warn("Page cache read failed, falling back to content service",
			zap.String("external_id", externalID),
			zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	page, err := r.next.LookupPage(ctx, externalID)
	if err != nil || page == nil {
		return page, err
	}

	stored := *page
	stored.ExternalID = externalID
	if err := r.cache.SetPage(ctx, &stored, r.ttl); err != nil {
		r.logger.Warn("Page cache write failed",
			zap.String("external_id", externalID),
			zap.Error(err))
	}

	return page, nil
}
