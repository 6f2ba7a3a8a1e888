package index

import (
	"strings"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
)

// LocationIndex - неизменяемый каталог локаций для подсказок.
// Категории (type) и города вычисляются один раз, в порядке первого появления.
type LocationIndex struct {
	locations  []domain.Location
	categories []string
	cities     []string
}

func NewLocationIndex(locations []domain.Location, logger *zap.Logger) *LocationIndex {
	kept := make([]domain.Location, 0, len(locations))
	seenCategory := make(map[string]struct{})
	seenCity := make(map[string]struct{})
	var categories, cities []string

	for _, loc := range locations {
		if strings.TrimSpace(loc.Name) == "" {
			logger.Warn("Dropping location without name", zap.String("id", loc.ID))
			continue
		}
		loc.Tags = append([]string(nil), loc.Tags...)
		kept = append(kept, loc)

		if loc.Type != "" {
			if _, ok := seenCategory[loc.Type]; !ok {
				seenCategory[loc.Type] = struct{}{}
				categories = append(categories, loc.Type)
			}
		}
		if loc.City != "" {
			if _, ok := seenCity[loc.City]; !ok {
				seenCity[loc.City] = struct{}{}
				cities = append(cities, loc.City)
			}
		}
	}

	logger.Info("Location index built",
		zap.Int("locations", len(kept)),
		zap.Int("categories", len(categories)),
		zap.Int("cities", len(cities)))

	return &LocationIndex{
		locations:  kept,
		categories: categories,
		cities:     cities,
	}
}

func (idx *LocationIndex) Len() int {
	return len(idx.locations)
}

// Locations обходит локации в исходном порядке, пока fn возвращает true
func (idx *LocationIndex) Locations(fn func(loc domain.Location) bool) {
	for i := range idx.locations {
		if !fn(idx.locations[i]) {
			return
		}
	}
}

// Categories - различные значения type в порядке первого появления
func (idx *LocationIndex) Categories() []string {
	return append([]string(nil), idx.categories...)
}

// Cities - различные города в порядке первого появления
func (idx *LocationIndex) Cities() []string {
	return append([]string(nil), idx.cities...)
}
