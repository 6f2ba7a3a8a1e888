package domain

import "time"

// EnrichedPage - страница контента для места, полученная из удалённого сервиса
type EnrichedPage struct {
	ExternalID string  `json:"external_id"`
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Kind       string  `json:"type,omitempty"`
	City       *string `json:"city,omitempty"`
	RawContent string  `json:"page_content,omitempty"`
	Published  bool    `json:"published"`
}

// LookupStatus - итог одного запроса к сервису контента
type LookupStatus string

const (
	LookupFound    LookupStatus = "found"
	LookupNotFound LookupStatus = "not_found"
	LookupFailed   LookupStatus = "failed"
)

// LookupOutcome - типизированный результат поиска страницы для одного кандидата
type LookupOutcome struct {
	ExternalID string
	Status     LookupStatus
	Page       *EnrichedPage
	Err        error
	Elapsed    time.Duration
}

// EnrichmentResult - результат обогащения ближайших мест.
// Pages упорядочены по расстоянию от seed.
type EnrichmentResult struct {
	SeedID     string         `json:"seed_id"`
	Pages      []EnrichedPage `json:"pages"`
	Candidates int            `json:"candidates"`
	Attempted  int            `json:"attempted"`
	Found      int            `json:"found"`
	Missed     int            `json:"missed"`
	Failed     int            `json:"failed"`
}

// ByID возвращает страницы в виде отображения externalID -> страница
func (r *EnrichmentResult) ByID() map[string]EnrichedPage {
	out := make(map[string]EnrichedPage, len(r.Pages))
	for _, p := range r.Pages {
		out[p.ExternalID] = p
	}
	return out
}
