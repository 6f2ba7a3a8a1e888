package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
)

// placeRow - строка таблицы places
type placeRow struct {
	Label      string          `db:"label"`
	Lat        sql.NullFloat64 `db:"lat"`
	Lon        sql.NullFloat64 `db:"lon"`
	Kind       string          `db:"kind"`
	Source     sql.NullString  `db:"source"`
	RefIndex   sql.NullInt64   `db:"ref_index"`
	RefIndices pq.Int64Array   `db:"ref_indices"`
	MinLon     sql.NullFloat64 `db:"bbox_min_lon"`
	MinLat     sql.NullFloat64 `db:"bbox_min_lat"`
	MaxLon     sql.NullFloat64 `db:"bbox_max_lon"`
	MaxLat     sql.NullFloat64 `db:"bbox_max_lat"`
	GlobalIDs  pq.StringArray  `db:"global_ids"`
}

type locationRow struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	City         sql.NullString  `db:"city"`
	Type         sql.NullString  `db:"type"`
	ActivityTags pq.StringArray  `db:"activity_tags"`
	Description  sql.NullString  `db:"description"`
	Lat          sql.NullFloat64 `db:"lat"`
	Lon          sql.NullFloat64 `db:"lon"`
	ParentID     sql.NullString  `db:"parent_location_id"`
}

// PlaceRepository читает индекс мест и каталог локаций из PostgreSQL
type PlaceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) *PlaceRepository {
	return &PlaceRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// LoadPlaces возвращает места в порядке ordinal - это порядок индекса
func (r *PlaceRepository) LoadPlaces(ctx context.Context) ([]domain.Place, error) {
	query := `
		SELECT
			label, lat, lon, kind, source, ref_index, ref_indices,
			bbox_min_lon, bbox_min_lat, bbox_max_lon, bbox_max_lat, global_ids
		FROM places
		ORDER BY ordinal
	`

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load places: %w", err)
	}

	places := make([]domain.Place, 0, len(rows))
	for i, row := range rows {
		if !row.Lat.Valid || !row.Lon.Valid {
			r.logger.Warn("Skipping place without coordinates",
				zap.Int("position", i),
				zap.String("label", row.Label))
			continue
		}
		places = append(places, row.toDomain())
	}

	r.logger.Info("Places loaded from database",
		zap.Int("rows", len(rows)),
		zap.Int("places", len(places)))

	return places, nil
}

// LoadLocations возвращает каталог локаций для подсказок
func (r *PlaceRepository) LoadLocations(ctx context.Context) ([]domain.Location, error) {
	query := `
		SELECT
			id, name, city, type, activity_tags, description, lat, lon, parent_location_id
		FROM locations
		ORDER BY ordinal
	`

	var rows []locationRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}

	locations := make([]domain.Location, 0, len(rows))
	for _, row := range rows {
		loc := domain.Location{
			ID:          row.ID,
			Name:        row.Name,
			City:        row.City.String,
			Type:        row.Type.String,
			Tags:        []string(row.ActivityTags),
			Description: row.Description.String,
			Lat:         row.Lat.Float64,
			Lon:         row.Lon.Float64,
		}
		if row.ParentID.Valid {
			parent := row.ParentID.String
			loc.ParentID = &parent
		}
		locations = append(locations, loc)
	}

	r.logger.Info("Locations loaded from database", zap.Int("locations", len(locations)))

	return locations, nil
}

func (row placeRow) toDomain() domain.Place {
	p := domain.Place{
		Label:       row.Label,
		Lat:         row.Lat.Float64,
		Lon:         row.Lon.Float64,
		Kind:        domain.PlaceKindFeature,
		Source:      row.Source.String,
		ExternalIDs: []string(row.GlobalIDs),
	}
	if domain.PlaceKind(row.Kind) == domain.PlaceKindMarker {
		p.Kind = domain.PlaceKindMarker
	}

	if row.RefIndex.Valid {
		ref := int(row.RefIndex.Int64)
		p.RefIndex = &ref
	}
	for _, ref := range row.RefIndices {
		p.RefIndices = append(p.RefIndices, int(ref))
	}

	if row.MinLon.Valid && row.MinLat.Valid && row.MaxLon.Valid && row.MaxLat.Valid {
		p.BBox = &orb.Bound{
			Min: orb.Point{row.MinLon.Float64, row.MinLat.Float64},
			Max: orb.Point{row.MaxLon.Float64, row.MaxLat.Float64},
		}
	}

	return p
}
