package usecase

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/index"
	"github.com/place-discovery/internal/pkg/utils"
)

// ProximityUseCase - поиск мест в радиусе от seed по индексу мест
type ProximityUseCase struct {
	places *index.PlaceIndex
	logger *zap.Logger
}

// NewProximityUseCase - создание нового ProximityUseCase
func NewProximityUseCase(places *index.PlaceIndex, logger *zap.Logger) *ProximityUseCase {
	return &ProximityUseCase{
		places: places,
		logger: logger,
	}
}

// Nearby возвращает все места в пределах radiusMiles от места с идентификатором seedID,
// по возрастанию расстояния (при равенстве - в порядке индекса). Сам seed исключается.
// Неизвестный seed - пустой результат, не ошибка.
func (uc *ProximityUseCase) Nearby(seedID string, radiusMiles float64) []domain.ProximityResult {
	if math.IsNaN(radiusMiles) || radiusMiles < 0 {
		return nil
	}

	seed, ok := uc.places.FindBySeed(seedID)
	if !ok {
		uc.logger.Debug("Seed not found in place index", zap.String("seed_id", seedID))
		return nil
	}

	var results []domain.ProximityResult
	uc.places.Each(func(_ int, p domain.Place) bool {
		if p.SameAs(seed) {
			return true
		}
		d := utils.HaversineMiles(seed.Lat, seed.Lon, p.Lat, p.Lon)
		if d <= radiusMiles {
			results = append(results, domain.ProximityResult{Place: p.Clone(), DistanceMiles: d})
		}
		return true
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceMiles < results[j].DistanceMiles
	})

	uc.logger.Debug("Nearby places resolved",
		zap.String("seed_id", seedID),
		zap.Float64("radius_miles", radiusMiles),
		zap.Int("count", len(results)))

	return results
}

// NearbyIDs - первый внешний идентификатор каждого ближайшего места, в порядке близости.
// Места без идентификаторов пропускаются; остальные идентификаторы места отбрасываются.
func (uc *ProximityUseCase) NearbyIDs(seedID string, radiusMiles float64) []string {
	nearby := uc.Nearby(seedID, radiusMiles)

	ids := make([]string, 0, len(nearby))
	for _, r := range nearby {
		if id, ok := r.Place.CanonicalID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
