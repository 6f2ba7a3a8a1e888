package repository

import (
	"context"

	"github.com/place-discovery/internal/domain"
)

// ContentRepository определяет доступ к удалённому сервису страниц
type ContentRepository interface {
	// LookupPage ищет страницу по внешнему идентификатору места.
	// (nil, nil) означает, что страницы нет; ошибка - сбой запроса.
	LookupPage(ctx context.Context, externalID string) (*domain.EnrichedPage, error)
}
