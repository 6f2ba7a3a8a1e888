package domain

import "github.com/paulmach/orb"

// PlaceKind - тип объекта в индексе мест
type PlaceKind string

const (
	PlaceKindMarker  PlaceKind = "marker"
	PlaceKindFeature PlaceKind = "feature"
)

// Place - неизменяемая запись индекса мест, загружается один раз при старте
type Place struct {
	Label       string     `json:"label"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Kind        PlaceKind  `json:"type"`
	Source      string     `json:"source,omitempty"`
	RefIndex    *int       `json:"ref_index,omitempty"`
	RefIndices  []int      `json:"ref_indices,omitempty"`
	BBox        *orb.Bound `json:"bbox,omitempty"`
	ExternalIDs []string   `json:"global_ids,omitempty"`
}

// Point возвращает координаты места в виде orb.Point
func (p Place) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Clone - глубокая копия: слайсы и указатели не разделяются с оригиналом
func (p Place) Clone() Place {
	cp := p
	if p.RefIndex != nil {
		v := *p.RefIndex
		cp.RefIndex = &v
	}
	if p.BBox != nil {
		b := *p.BBox
		cp.BBox = &b
	}
	cp.RefIndices = append([]int(nil), p.RefIndices...)
	cp.ExternalIDs = append([]string(nil), p.ExternalIDs...)
	return cp
}

// CanonicalID - первый внешний идентификатор, если он есть
func (p Place) CanonicalID() (string, bool) {
	if len(p.ExternalIDs) == 0 || p.ExternalIDs[0] == "" {
		return "", false
	}
	return p.ExternalIDs[0], true
}

// HasExternalID проверяет, содержит ли место данный внешний идентификатор
func (p Place) HasExternalID(id string) bool {
	for _, ext := range p.ExternalIDs {
		if ext == id {
			return true
		}
	}
	return false
}

// SameAs - структурное совпадение (label, source, lat, lon).
// Два разных места с одинаковыми четырьмя полями тоже считаются одним.
func (p Place) SameAs(other Place) bool {
	return p.Label == other.Label &&
		p.Source == other.Source &&
		p.Lat == other.Lat &&
		p.Lon == other.Lon
}

// ProximityResult - место и расстояние до него от seed
type ProximityResult struct {
	Place         Place   `json:"place"`
	DistanceMiles float64 `json:"distance_miles"`
}
