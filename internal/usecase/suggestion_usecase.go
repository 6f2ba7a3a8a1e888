package usecase

import (
	"strings"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/index"
	"github.com/place-discovery/internal/pkg/fuzzy"
)

const (
	maxLocationSuggestions = 5
	maxCategorySuggestions = 5
	maxCitySuggestions     = 5

	// MaxSuggestions - общий лимит списка подсказок
	MaxSuggestions = 8
)

// SuggestionUseCase - подсказки для строки поиска
type SuggestionUseCase struct {
	locations *index.LocationIndex
	logger    *zap.Logger
}

func NewSuggestionUseCase(locations *index.LocationIndex, logger *zap.Logger) *SuggestionUseCase {
	return &SuggestionUseCase{
		locations: locations,
		logger:    logger,
	}
}

// Suggest возвращает до 8 подсказок: сначала локации, затем категории, затем города.
func (uc *SuggestionUseCase) Suggest(query string) []domain.Suggestion {
	q := strings.TrimSpace(query)
	if q == "" {
		return []domain.Suggestion{}
	}

	suggestions := make([]domain.Suggestion, 0, MaxSuggestions)

	var locations []domain.Suggestion
	uc.locations.Locations(func(loc domain.Location) bool {
		if locationMatches(loc, q) {
			locations = append(locations, domain.LocationSuggestion(loc))
		}
		return len(locations) < maxLocationSuggestions
	})
	suggestions = append(suggestions, locations...)

	for _, category := range firstMatches(uc.locations.Categories(), q, maxCategorySuggestions) {
		suggestions = append(suggestions, domain.CategorySuggestion(category))
	}
	for _, city := range firstMatches(uc.locations.Cities(), q, maxCitySuggestions) {
		suggestions = append(suggestions, domain.CitySuggestion(city))
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}

	uc.logger.Debug("Suggestions built",
		zap.String("query", q),
		zap.Int("count", len(suggestions)))

	return suggestions
}

func locationMatches(loc domain.Location, q string) bool {
	if fuzzy.MatchAny(q, loc.Name, loc.City, loc.Type) {
		return true
	}
	return fuzzy.MatchAny(q, loc.Tags...)
}

func firstMatches(values []string, q string, limit int) []string {
	var out []string
	for _, v := range values {
		if len(out) == limit {
			break
		}
		if fuzzy.Match(v, q) {
			out = append(out, v)
		}
	}
	return out
}
