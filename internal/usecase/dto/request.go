package dto

// NearbyRequest - запрос мест в радиусе от seed
type NearbyRequest struct {
	ID          string  `query:"id" validate:"required,max=256"`
	RadiusMiles float64 `query:"radius" validate:"finite,gt=0,max=500"`
}

// NearbyPagesRequest - запрос страниц контента для ближайших мест
type NearbyPagesRequest struct {
	ID          string  `query:"id" validate:"required,max=256"`
	RadiusMiles float64 `query:"radius" validate:"finite,gt=0,max=500"`
	MaxResults  int     `query:"max" validate:"min=1,max=50"`
}

// WarmRequest - запрос на фоновый прогрев кеша страниц
type WarmRequest struct {
	ID          string  `json:"id" validate:"required,max=256"`
	RadiusMiles float64 `json:"radius" validate:"omitempty,finite,gt=0,max=500"`
	MaxResults  int     `json:"max" validate:"omitempty,min=1,max=50"`
}

// SuggestRequest - запрос подсказок для строки поиска
type SuggestRequest struct {
	Query string `query:"q" validate:"required,max=100"`
}
