package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
)

// GeoJSONPlaceSource - индекс мест из FeatureCollection.
// Точка берётся из Point-геометрии, для остальных геометрий - центр bound.
type GeoJSONPlaceSource struct {
	path   string
	logger *zap.Logger
}

func NewGeoJSONPlaceSource(path string, logger *zap.Logger) *GeoJSONPlaceSource {
	return &GeoJSONPlaceSource{path: path, logger: logger}
}

func (s *GeoJSONPlaceSource) LoadPlaces(ctx context.Context) ([]domain.Place, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read geojson %s: %w", s.path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geojson %s: %w", s.path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			s.logger.Warn("Skipping feature without geometry", zap.Int("position", i))
			continue
		}
		places = append(places, featureToPlace(f))
	}

	s.logger.Info("Places loaded",
		zap.String("path", s.path),
		zap.Int("features", len(fc.Features)),
		zap.Int("places", len(places)))

	return places, nil
}

func featureToPlace(f *geojson.Feature) domain.Place {
	p := domain.Place{
		Label:       f.Properties.MustString("label", f.Properties.MustString("name", "")),
		Source:      f.Properties.MustString("source", ""),
		Kind:        placeKind(f.Properties.MustString("type", "")),
		ExternalIDs: stringList(f.Properties["global_ids"]),
	}

	var center orb.Point
	if pt, ok := f.Geometry.(orb.Point); ok {
		center = pt
	} else {
		bound := f.Geometry.Bound()
		center = bound.Center()
		p.BBox = &bound
	}
	if f.BBox.Valid() {
		bound := f.BBox.Bound()
		p.BBox = &bound
	}

	p.Lon, p.Lat = center.Lon(), center.Lat()

	if ref, ok := f.Properties["ref_index"].(float64); ok {
		idx := int(ref)
		p.RefIndex = &idx
	}

	return p
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
