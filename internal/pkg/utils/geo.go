package utils

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusMiles - средний радиус Земли в милях
const EarthRadiusMiles = 3958.8

// MaxRadiusMiles - верхняя граница радиуса для запросов через API
const MaxRadiusMiles = 500.0

// HaversineMiles вычисляет расстояние по большому кругу между двумя точками в милях
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	a := sinDLat*sinDLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// DistanceMiles - то же самое для orb.Point (X = lon, Y = lat)
func DistanceMiles(a, b orb.Point) float64 {
	return HaversineMiles(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет радиус запроса (0 < r <= 500 миль)
func ValidateRadius(radiusMiles float64) bool {
	return radiusMiles > 0 && radiusMiles <= MaxRadiusMiles
}
