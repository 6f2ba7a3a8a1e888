// Package dataset loads the static place and location datasets the service
// indexes at startup.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

// placeRecord - запись search_index_light.json
type placeRecord struct {
	Label      string    `json:"label"`
	Lat        *float64  `json:"lat"`
	Lon        *float64  `json:"lon"`
	Type       string    `json:"type"`
	Source     string    `json:"source"`
	RefIndex   *int      `json:"ref_index"`
	RefIndices []int     `json:"ref_indices"`
	BBox       []float64 `json:"bbox"`
	GlobalIDs  []string  `json:"global_ids"`
}

// JSONPlaceSource - индекс мест из JSON-массива
type JSONPlaceSource struct {
	path   string
	logger *zap.Logger
}

func NewJSONPlaceSource(path string, logger *zap.Logger) *JSONPlaceSource {
	return &JSONPlaceSource{path: path, logger: logger}
}

// NewFilePlaceSource выбирает формат по расширению: .geojson или JSON-массив
func NewFilePlaceSource(path string, logger *zap.Logger) repository.PlaceSource {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson":
		return NewGeoJSONPlaceSource(path, logger)
	default:
		return NewJSONPlaceSource(path, logger)
	}
}

func (s *JSONPlaceSource) LoadPlaces(ctx context.Context) ([]domain.Place, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read places %s: %w", s.path, err)
	}

	var records []placeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse places %s: %w", s.path, err)
	}

	places := make([]domain.Place, 0, len(records))
	for i, r := range records {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if r.Lat == nil || r.Lon == nil {
			s.logger.Warn("Skipping place without coordinates",
				zap.Int("position", i),
				zap.String("label", r.Label))
			continue
		}

		places = append(places, r.toDomain())
	}

	s.logger.Info("Places loaded",
		zap.String("path", s.path),
		zap.Int("records", len(records)),
		zap.Int("places", len(places)))

	return places, nil
}

func (r placeRecord) toDomain() domain.Place {
	p := domain.Place{
		Label:       r.Label,
		Lat:         *r.Lat,
		Lon:         *r.Lon,
		Kind:        placeKind(r.Type),
		Source:      r.Source,
		RefIndex:    r.RefIndex,
		RefIndices:  r.RefIndices,
		ExternalIDs: r.GlobalIDs,
	}

	// bbox: [minLon, minLat, maxLon, maxLat]
	if len(r.BBox) == 4 {
		p.BBox = &orb.Bound{
			Min: orb.Point{r.BBox[0], r.BBox[1]},
			Max: orb.Point{r.BBox[2], r.BBox[3]},
		}
	}

	return p
}

func placeKind(t string) domain.PlaceKind {
	if domain.PlaceKind(t) == domain.PlaceKindMarker {
		return domain.PlaceKindMarker
	}
	return domain.PlaceKindFeature
}
