package fuzzy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"kitten", "sitting", 3},
		{"galesville", "galeville", 1},
		{"trempealeau", "trempeleau", 1},
		{"book", "back", 2},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			assert.Equal(t, tc.expected, Distance(tc.a, tc.b))
			assert.Equal(t, tc.expected, Distance(tc.b, tc.a))
		})
	}
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 1, Threshold(0))
	assert.Equal(t, 1, Threshold(3))
	assert.Equal(t, 1, Threshold(7))
	assert.Equal(t, 2, Threshold(8))
	assert.Equal(t, 2, Threshold(9))
	assert.Equal(t, 3, Threshold(12))
}

func TestMatch(t *testing.T) {
	t.Run("empty query never matches", func(t *testing.T) {
		for _, s := range []string{"", "a", "Perrot State Park"} {
			assert.False(t, Match(s, ""), s)
		}
	})

	t.Run("case-insensitive substring always matches", func(t *testing.T) {
		source := "Perrot State Park"
		for _, q := range []string{"perrot", "STATE", "t s", "Park", "p"} {
			assert.True(t, Match(source, q), q)
		}
	})

	t.Run("prefix", func(t *testing.T) {
		assert.True(t, Match("Hiking Trail", "hik"))
	})

	t.Run("typo within threshold", func(t *testing.T) {
		// distance 1, threshold max(1, floor(0.25*9)) = 2
		assert.True(t, Match("Galesville", "galeville"))
		assert.True(t, Match("Park", "Parc"))
	})

	t.Run("too far", func(t *testing.T) {
		assert.False(t, Match("Galesville", "arcadia"))
		assert.False(t, Match("Trail", "xyz"))
	})

	t.Run("whole-string distance only", func(t *testing.T) {
		// "trial" is distance 2 from "trail", threshold for 5 runes is 1
		assert.False(t, Match("Great River Trail", "trial"))
		assert.False(t, Match("Trail", "trial"))
	})

	t.Run("non-ascii", func(t *testing.T) {
		assert.True(t, Match("Café Ölberg", "café"))
		assert.True(t, Match("Über", "uber"))
	})
}

func TestMatchAny(t *testing.T) {
	assert.True(t, MatchAny("hike", "Trail", "Hike"))
	assert.False(t, MatchAny("hike", "Trail", "Park"))
	assert.False(t, MatchAny("hike"))
	assert.True(t, Match("", "h"), "distance 1 is within threshold")
	assert.False(t, MatchAny("h", "", ""), "blank fields are ignored")
}
