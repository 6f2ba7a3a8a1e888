package utils

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestHaversineMiles(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineMiles(44.0274, -91.4627, 44.0274, -91.4627))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][4]float64{
			{0, 0, 0.5, 0.5},
			{44.0274, -91.4627, 44.1, -91.3},
			{-33.86, 151.21, 51.5, -0.12},
			{89.9, 10, -89.9, -170},
		}
		for _, p := range pairs {
			ab := HaversineMiles(p[0], p[1], p[2], p[3])
			ba := HaversineMiles(p[2], p[3], p[0], p[1])
			assert.InDelta(t, ab, ba, 1e-9)
			assert.GreaterOrEqual(t, ab, 0.0)
		}
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		expected := EarthRadiusMiles * math.Pi / 180
		assert.InDelta(t, expected, HaversineMiles(10, 20, 11, 20), 1e-9)
		assert.InDelta(t, 69.09, HaversineMiles(10, 20, 11, 20), 0.01)
	})

	t.Run("orb points", func(t *testing.T) {
		a := orb.Point{-91.4627, 44.0274}
		b := orb.Point{-91.3, 44.1}
		assert.InDelta(t, HaversineMiles(44.0274, -91.4627, 44.1, -91.3), DistanceMiles(a, b), 1e-12)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(44.02, -91.46))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
	assert.False(t, ValidateCoordinates(math.NaN(), 0))
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, ValidateRadius(5))
	assert.True(t, ValidateRadius(MaxRadiusMiles))
	assert.False(t, ValidateRadius(0))
	assert.False(t, ValidateRadius(-1))
	assert.False(t, ValidateRadius(MaxRadiusMiles + 0.1))
}
