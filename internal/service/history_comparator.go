package service

import (
	"sort"

	"persona-quiz/internal/domain"
)

// HistoryComparator compara el resultado mas reciente contra el inmediatamente anterior.
type HistoryComparator struct{}

// Compare devuelve latest-previous por polo. Con menos de dos resultados
// devuelve un mapa vacio: no hay historia todavia, no es un error.
func (HistoryComparator) Compare(results []domain.TestResult) domain.ScoreDelta {
	if len(results) < 2 {
		return domain.ScoreDelta{}
	}

	ordered := OrderResults(results)
	return HistoryComparator{}.Diff(ordered[0], ordered[1])
}

// Diff devuelve latest-previous para los 8 polos.
func (HistoryComparator) Diff(latest, previous domain.TestResult) domain.ScoreDelta {
	delta := make(domain.ScoreDelta, 8)
	for _, pole := range domain.Poles() {
		delta[pole] = latest.Scores[pole] - previous.Scores[pole]
	}
	return delta
}

// OrderResults devuelve una copia ordenada del mas nuevo al mas viejo. Con
// timestamps iguales, el insertado despues (Seq mayor) va primero.
func OrderResults(results []domain.TestResult) []domain.TestResult {
	ordered := make([]domain.TestResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Seq > b.Seq
	})
	return ordered
}
