package repository

import (
	"context"
	"time"

	"github.com/place-discovery/internal/domain"
)

// PageCache определяет методы кеша страниц контента
type PageCache interface {
	// GetPage получает страницу из кеша; (nil, nil) при промахе
	GetPage(ctx context.Context, externalID string) (*domain.EnrichedPage, error)

	// SetPage сохраняет страницу в кеше с TTL
	SetPage(ctx context.Context, page *domain.EnrichedPage, ttl time.Duration) error
}
