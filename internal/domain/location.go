package domain

// Location - объект каталога, по которому работают подсказки поиска
type Location struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city,omitempty"`
	Type        string   `json:"type,omitempty"`
	Tags        []string `json:"activity_tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Lat         float64  `json:"lat,omitempty"`
	Lon         float64  `json:"lon,omitempty"`
	ParentID    *string  `json:"parent_location_id,omitempty"`
}

// SuggestionKind - класс подсказки
type SuggestionKind string

const (
	SuggestionLocation SuggestionKind = "location"
	SuggestionCategory SuggestionKind = "category"
	SuggestionCity     SuggestionKind = "city"
)

// Suggestion - подсказка: локация, категория или город.
// Для локации заполнено поле Location, для остальных - Text.
type Suggestion struct {
	Kind     SuggestionKind `json:"kind"`
	Location *Location      `json:"location,omitempty"`
	Text     string         `json:"text"`
}

func LocationSuggestion(loc Location) Suggestion {
	return Suggestion{Kind: SuggestionLocation, Location: &loc, Text: loc.Name}
}

func CategorySuggestion(category string) Suggestion {
	return Suggestion{Kind: SuggestionCategory, Text: category}
}

func CitySuggestion(city string) Suggestion {
	return Suggestion{Kind: SuggestionCity, Text: city}
}
