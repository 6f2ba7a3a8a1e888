package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamNearbyWarm = "stream:nearby:warm"
)

// WarmEvent - запрос на прогрев кеша страниц для ближайших мест
type WarmEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	SeedID      string    `json:"seed_id"`
	RadiusMiles float64   `json:"radius_miles"`
	MaxResults  int       `json:"max_results"`
	RequestedAt time.Time `json:"requested_at"`
}

// Valid проверяет, что событие можно обработать
func (e *WarmEvent) Valid() bool {
	return e.SeedID != "" && e.RadiusMiles > 0 && e.MaxResults > 0
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
