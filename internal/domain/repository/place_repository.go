package repository

import (
	"context"

	"github.com/place-discovery/internal/domain"
)

// PlaceSource загружает набор мест для индекса (файл или БД)
type PlaceSource interface {
	LoadPlaces(ctx context.Context) ([]domain.Place, error)
}

// LocationSource загружает каталог локаций для подсказок
type LocationSource interface {
	LoadLocations(ctx context.Context) ([]domain.Location, error)
}
