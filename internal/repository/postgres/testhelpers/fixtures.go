package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PlaceFixture - строка для таблицы places
type PlaceFixture struct {
	Label     string
	Lat, Lon  *float64
	Kind      string
	Source    string
	GlobalIDs []string
	BBox      []float64
}

// InsertPlaces вставляет места в заданном порядке
func InsertPlaces(ctx context.Context, db *sqlx.DB, places ...PlaceFixture) error {
	for _, p := range places {
		ids := p.GlobalIDs
		if ids == nil {
			ids = []string{}
		}
		var minLon, minLat, maxLon, maxLat *float64
		if len(p.BBox) == 4 {
			minLon, minLat, maxLon, maxLat = &p.BBox[0], &p.BBox[1], &p.BBox[2], &p.BBox[3]
		}
		_, err := db.ExecContext(ctx, `
			INSERT INTO places (label, lat, lon, kind, source, global_ids,
				bbox_min_lon, bbox_min_lat, bbox_max_lon, bbox_max_lat)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.Label, p.Lat, p.Lon, p.Kind, p.Source, pq.Array(ids),
			minLon, minLat, maxLon, maxLat,
		)
		if err != nil {
			return fmt.Errorf("insert place %s: %w", p.Label, err)
		}
	}
	return nil
}

// InsertLocation вставляет локацию каталога
func InsertLocation(ctx context.Context, db *sqlx.DB, id, name, city, kind string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO locations (id, name, city, type, activity_tags)
		VALUES ($1, $2, $3, $4, $5)`,
		id, name, city, kind, pq.Array(tags),
	)
	if err != nil {
		return fmt.Errorf("insert location %s: %w", id, err)
	}
	return nil
}
