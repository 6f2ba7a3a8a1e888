package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
)

// locationRecord - запись каталога локаций (формат админки)
type locationRecord struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	City             string   `json:"city"`
	Type             string   `json:"type"`
	ActivityTags     []string `json:"activityTags"`
	Description      string   `json:"description"`
	Lat              float64  `json:"lat"`
	Lon              float64  `json:"lon"`
	ParentLocationID *string  `json:"parent_location_id"`
}

// JSONLocationSource - каталог локаций для подсказок из JSON-массива
type JSONLocationSource struct {
	path   string
	logger *zap.Logger
}

func NewJSONLocationSource(path string, logger *zap.Logger) *JSONLocationSource {
	return &JSONLocationSource{path: path, logger: logger}
}

func (s *JSONLocationSource) LoadLocations(ctx context.Context) ([]domain.Location, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations %s: %w", s.path, err)
	}

	var records []locationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse locations %s: %w", s.path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locations := make([]domain.Location, 0, len(records))
	for _, r := range records {
		locations = append(locations, domain.Location{
			ID:          r.ID,
			Name:        strings.TrimSpace(r.Name),
			City:        strings.TrimSpace(r.City),
			Type:        strings.TrimSpace(r.Type),
			Tags:        r.ActivityTags,
			Description: r.Description,
			Lat:         r.Lat,
			Lon:         r.Lon,
			ParentID:    r.ParentLocationID,
		})
	}

	s.logger.Info("Locations loaded",
		zap.String("path", s.path),
		zap.Int("locations", len(locations)))

	return locations, nil
}
