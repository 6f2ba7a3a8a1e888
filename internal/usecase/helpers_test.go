package usecase_test

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/index"
	"github.com/place-discovery/internal/pkg/utils"
)

// milesNorth - широта точки в d милях к северу от экватора на меридиане 0
func milesNorth(d float64) float64 {
	return d / (utils.EarthRadiusMiles * math.Pi / 180)
}

func placeAt(label string, miles float64, ids ...string) domain.Place {
	return domain.Place{
		Label:       label,
		Lat:         milesNorth(miles),
		Lon:         0,
		Kind:        domain.PlaceKindFeature,
		Source:      "Trails",
		ExternalIDs: ids,
	}
}

func newPlaceIndex(places ...domain.Place) *index.PlaceIndex {
	return index.NewPlaceIndex(places, zap.NewNop())
}

// MockContentRepository is a mock of ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) LookupPage(ctx context.Context, externalID string) (*domain.EnrichedPage, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrichedPage), args.Error(1)
}

// recordingObserver собирает события для проверок
type recordingObserver struct {
	mu       sync.Mutex
	outcomes []domain.LookupOutcome
	runs     []domain.EnrichmentResult
}

func (o *recordingObserver) ObserveLookup(_ string, outcome domain.LookupOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) ObserveRun(result *domain.EnrichmentResult, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs = append(o.runs, *result)
}

func (o *recordingObserver) statuses() []domain.LookupStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]domain.LookupStatus, 0, len(o.outcomes))
	for _, oc := range o.outcomes {
		out = append(out, oc.Status)
	}
	return out
}

func page(title string) *domain.EnrichedPage {
	return &domain.EnrichedPage{ID: title, Title: title, Kind: "park", Published: true}
}
