// Package fuzzy implements the approximate matching used by search suggestions:
// case-insensitive containment, prefix, then a bounded Levenshtein distance.
package fuzzy

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// thresholdRatio - доля длины запроса, допустимая как расстояние редактирования
const thresholdRatio = 0.25

// Distance - расстояние Левенштейна (вставка, удаление, замена по 1)
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Threshold - максимальное допустимое расстояние для запроса длины n символов
func Threshold(queryLen int) int {
	return max(1, int(thresholdRatio*float64(queryLen)))
}

// Match сообщает, совпадает ли source с query приблизительно.
// Пустой query никогда не совпадает.
func Match(source, query string) bool {
	if query == "" {
		return false
	}

	s := strings.ToLower(source)
	q := strings.ToLower(query)

	if strings.Contains(s, q) || strings.HasPrefix(s, q) {
		return true
	}

	return Distance(s, q) <= Threshold(utf8.RuneCountInString(q))
}

// MatchAny - true, если хотя бы одна непустая строка совпадает с query.
// Пустые поля пропускаются: иначе однобуквенный запрос совпал бы с ними по расстоянию.
func MatchAny(query string, sources ...string) bool {
	for _, s := range sources {
		if s != "" && Match(s, query) {
			return true
		}
	}
	return false
}
