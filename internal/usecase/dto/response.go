package dto

import (
	"github.com/google/uuid"

	"github.com/place-discovery/internal/domain"
)

// NearbyPlace - место в ответе на запрос ближайших
type NearbyPlace struct {
	Label         string           `json:"label"`
	Lat           float64          `json:"lat"`
	Lon           float64          `json:"lon"`
	Type          domain.PlaceKind `json:"type"`
	Source        string           `json:"source,omitempty"`
	RefIndex      *int             `json:"ref_index,omitempty"`
	GlobalIDs     []string         `json:"global_ids,omitempty"`
	DistanceMiles float64          `json:"distance_miles"`
}

// NearbyResponse - места в радиусе, по возрастанию расстояния
type NearbyResponse struct {
	SeedID      string        `json:"seed_id"`
	RadiusMiles float64       `json:"radius_miles"`
	Places      []NearbyPlace `json:"places"`
}

// NearbyIDsResponse - канонические идентификаторы ближайших мест
type NearbyIDsResponse struct {
	SeedID string   `json:"seed_id"`
	IDs    []string `json:"ids"`
}

// PageResponse - страница контента
type PageResponse struct {
	GlobalID    string  `json:"global_id"`
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type,omitempty"`
	City        *string `json:"city,omitempty"`
	PageContent string  `json:"page_content,omitempty"`
	Published   bool    `json:"published"`
}

// NearbyPagesResponse - страницы для ближайших мест и статистика запросов
type NearbyPagesResponse struct {
	SeedID     string         `json:"seed_id"`
	Pages      []PageResponse `json:"pages"`
	Candidates int            `json:"candidates"`
	Attempted  int            `json:"attempted"`
	Found      int            `json:"found"`
	Missed     int            `json:"missed"`
	Failed     int            `json:"failed"`
	// Partial - запрос прерван по таймауту или отмене, Pages содержит найденное до этого
	Partial bool `json:"partial"`
}

// WarmResponse - подтверждение постановки события прогрева в очередь
type WarmResponse struct {
	EventID uuid.UUID `json:"event_id"`
	Stream  string    `json:"stream"`
}

// SuggestionResponse - одна подсказка
type SuggestionResponse struct {
	Kind     domain.SuggestionKind `json:"kind"`
	Text     string                `json:"text"`
	Location *domain.Location      `json:"location,omitempty"`
}

// SuggestResponse - подсказки для строки поиска
type SuggestResponse struct {
	Query       string               `json:"query"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

func NewNearbyResponse(seedID string, radiusMiles float64, results []domain.ProximityResult) NearbyResponse {
	places := make([]NearbyPlace, 0, len(results))
	for _, r := range results {
		places = append(places, NearbyPlace{
			Label:         r.Place.Label,
			Lat:           r.Place.Lat,
			Lon:           r.Place.Lon,
			Type:          r.Place.Kind,
			Source:        r.Place.Source,
			RefIndex:      r.Place.RefIndex,
			GlobalIDs:     r.Place.ExternalIDs,
			DistanceMiles: r.DistanceMiles,
		})
	}
	return NearbyResponse{SeedID: seedID, RadiusMiles: radiusMiles, Places: places}
}

func NewNearbyPagesResponse(result *domain.EnrichmentResult) NearbyPagesResponse {
	pages := make([]PageResponse, 0, len(result.Pages))
	for _, p := range result.Pages {
		pages = append(pages, PageResponse{
			GlobalID:    p.ExternalID,
			ID:          p.ID,
			Title:       p.Title,
			Type:        p.Kind,
			City:        p.City,
			PageContent: p.RawContent,
			Published:   p.Published,
		})
	}
	return NearbyPagesResponse{
		SeedID:     result.SeedID,
		Pages:      pages,
		Candidates: result.Candidates,
		Attempted:  result.Attempted,
		Found:      result.Found,
		Missed:     result.Missed,
		Failed:     result.Failed,
	}
}

func NewSuggestResponse(query string, suggestions []domain.Suggestion) SuggestResponse {
	out := make([]SuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, SuggestionResponse{Kind: s.Kind, Text: s.Text, Location: s.Location})
	}
	return SuggestResponse{Query: query, Suggestions: out}
}
