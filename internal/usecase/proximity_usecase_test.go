package usecase_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/usecase"
)

func labels(results []domain.ProximityResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Place.Label)
	}
	return out
}

func TestProximityUseCase_Nearby(t *testing.T) {
	logger := zap.NewNop()

	t.Run("place three miles away", func(t *testing.T) {
		uc := usecase.NewProximityUseCase(newPlaceIndex(
			placeAt("A", 0, "A-id"),
			placeAt("B", 3, "B-id"),
		), logger)

		within5 := uc.Nearby("A-id", 5)
		require.Len(t, within5, 1)
		assert.Equal(t, "B", within5[0].Place.Label)
		assert.InDelta(t, 3.0, within5[0].DistanceMiles, 1e-9)

		assert.Empty(t, uc.Nearby("A-id", 2))
	})

	t.Run("unknown seed is empty, not an error", func(t *testing.T) {
		uc := usecase.NewProximityUseCase(newPlaceIndex(placeAt("A", 0, "A-id")), logger)
		assert.Empty(t, uc.Nearby("missing", 100))
	})

	t.Run("sorted by distance with stable ties", func(t *testing.T) {
		uc := usecase.NewProximityUseCase(newPlaceIndex(
			placeAt("Far", 4),
			placeAt("Seed", 0, "seed"),
			placeAt("Tie-1", 2),
			placeAt("Near", 1),
			placeAt("Tie-2", 2),
		), logger)

		assert.Equal(t, []string{"Near", "Tie-1", "Tie-2", "Far"}, labels(uc.Nearby("seed", 10)))
	})

	t.Run("seed excluded by structure, not identifiers", func(t *testing.T) {
		seed := placeAt("Seed", 0, "seed")
		twin := seed
		twin.ExternalIDs = []string{"other"}
		otherSource := seed
		otherSource.Source = "Parks"

		uc := usecase.NewProximityUseCase(newPlaceIndex(seed, twin, otherSource), logger)

		got := uc.Nearby("seed", 1)
		require.Len(t, got, 1)
		assert.Equal(t, "Parks", got[0].Place.Source)
		assert.Equal(t, 0.0, got[0].DistanceMiles)
	})

	t.Run("radius boundary is inclusive", func(t *testing.T) {
		uc := usecase.NewProximityUseCase(newPlaceIndex(
			placeAt("A", 0, "A-id"),
			placeAt("B", 3, "B-id"),
		), logger)
		d := uc.Nearby("A-id", 10)[0].DistanceMiles
		assert.Len(t, uc.Nearby("A-id", d), 1)
	})

	t.Run("invalid radius", func(t *testing.T) {
		uc := usecase.NewProximityUseCase(newPlaceIndex(
			placeAt("A", 0, "A-id"),
			placeAt("B", 0.5),
		), logger)
		assert.Empty(t, uc.Nearby("A-id", -1))
		assert.Empty(t, uc.Nearby("A-id", math.NaN()))
	})

	t.Run("smaller radius is a subset", func(t *testing.T) {
		places := []domain.Place{placeAt("Seed", 0, "seed")}
		for i, d := range []float64{0.2, 0.9, 1.5, 2.7, 3.1, 4.4, 6.0} {
			places = append(places, placeAt(string(rune('a'+i)), d))
		}
		uc := usecase.NewProximityUseCase(newPlaceIndex(places...), logger)

		radii := []float64{0, 0.5, 1, 2, 3, 5, 10}
		for i := 1; i < len(radii); i++ {
			small := labels(uc.Nearby("seed", radii[i-1]))
			large := labels(uc.Nearby("seed", radii[i]))
			assert.Subset(t, large, small)
		}
	})

	t.Run("results do not alias the index", func(t *testing.T) {
		uc := usecase.NewProximityUseCase(newPlaceIndex(
			placeAt("A", 0, "A-id"),
			placeAt("B", 1, "B-id", "B-alt"),
		), logger)

		first := uc.Nearby("A-id", 5)
		require.Len(t, first, 1)
		first[0].Place.ExternalIDs[0] = "mutated"

		assert.Equal(t, []string{"B-id"}, uc.NearbyIDs("A-id", 5))
	})
}

func TestProximityUseCase_NearbyIDs(t *testing.T) {
	uc := usecase.NewProximityUseCase(newPlaceIndex(
		placeAt("Seed", 0, "seed"),
		placeAt("Far", 3, "far-1", "far-2"),
		placeAt("No ids", 1),
		placeAt("Empty id", 1.5, ""),
		placeAt("Near", 0.5, "near"),
		placeAt("Shares", 2, "near"),
	), zap.NewNop())

	ids := uc.NearbyIDs("seed", 5)

	// только первый идентификатор, по возрастанию расстояния, без дедупликации
	assert.Equal(t, []string{"near", "near", "far-1"}, ids)
	assert.Empty(t, uc.NearbyIDs("missing", 5))
}
