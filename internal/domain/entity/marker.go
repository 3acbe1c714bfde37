package entity

import (
	"sort"
	"strings"
)

// Маркеры антигенов, которые участвуют в определении группы крови.
const (
	MarkerA = "a"
	MarkerB = "b"
	MarkerD = "d"
)

// MarkerSet — множество маркеров, найденных на одном образце.
// Имена хранятся в нижнем регистре, повторы схлопываются.
type MarkerSet map[string]struct{}

// NewMarkerSet собирает множество из имён классов детектора.
func NewMarkerSet(labels ...string) MarkerSet {
	set := make(MarkerSet, len(labels))
	for _, l := range labels {
		set.Add(l)
	}
	return set
}

// Add добавляет маркер, приводя его к нижнему регистру.
func (s MarkerSet) Add(label string) {
	s[strings.ToLower(label)] = struct{}{}
}

// Has проверяет наличие маркера.
func (s MarkerSet) Has(label string) bool {
	_, ok := s[strings.ToLower(label)]
	return ok
}

// Labels возвращает маркеры в отсортированном виде.
func (s MarkerSet) Labels() []string {
	labels := make([]string, 0, len(s))
	for l := range s {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Antigens оставляет только маркеры из {a, b, d}.
func (s MarkerSet) Antigens() MarkerSet {
	out := make(MarkerSet, 3)
	for _, m := range []string{MarkerA, MarkerB, MarkerD} {
		if s.Has(m) {
			out[m] = struct{}{}
		}
	}
	return out
}

// key — канонический ключ множества для таблицы групп крови.
func (s MarkerSet) key() string {
	return strings.Join(s.Labels(), ",")
}

// String форматирует маркеры для отчёта: "A, D".
func (s MarkerSet) String() string {
	return strings.ToUpper(strings.Join(s.Labels(), ", "))
}
