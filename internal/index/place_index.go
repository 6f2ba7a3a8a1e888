package index

import (
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/pkg/utils"
)

// PlaceIndex - неизменяемая упорядоченная последовательность мест.
// После создания безопасен для конкурентного чтения без блокировок.
type PlaceIndex struct {
	places []domain.Place
}

// NewPlaceIndex строит индекс, отбрасывая записи с некорректными координатами.
// Порядок оставшихся записей сохраняется.
func NewPlaceIndex(places []domain.Place, logger *zap.Logger) *PlaceIndex {
	kept := make([]domain.Place, 0, len(places))
	dropped := 0

	for i, p := range places {
		if !utils.ValidateCoordinates(p.Lat, p.Lon) {
			dropped++
			logger.Warn("Dropping place with invalid coordinates",
				zap.Int("position", i),
				zap.String("label", p.Label),
				zap.Float64("lat", p.Lat),
				zap.Float64("lon", p.Lon))
			continue
		}

		kept = append(kept, p.Clone())
	}

	logger.Info("Place index built",
		zap.Int("places", len(kept)),
		zap.Int("dropped", dropped))

	return &PlaceIndex{places: kept}
}

// Len - количество мест в индексе
func (idx *PlaceIndex) Len() int {
	return len(idx.places)
}

// At возвращает глубокую копию места по позиции
func (idx *PlaceIndex) At(i int) domain.Place {
	return idx.places[i].Clone()
}

// Each обходит места в исходном порядке, пока fn возвращает true.
// Место передаётся без копирования: fn не должна менять его слайсы и указатели,
// а для сохранения за пределами fn нужен p.Clone().
func (idx *PlaceIndex) Each(fn func(i int, p domain.Place) bool) {
	for i := range idx.places {
		if !fn(i, idx.places[i]) {
			return
		}
	}
}

// FindBySeed возвращает первое место, у которого есть данный внешний идентификатор
func (idx *PlaceIndex) FindBySeed(externalID string) (domain.Place, bool) {
	if externalID == "" {
		return domain.Place{}, false
	}
	for i := range idx.places {
		if idx.places[i].HasExternalID(externalID) {
			return idx.places[i].Clone(), true
		}
	}
	return domain.Place{}, false
}
