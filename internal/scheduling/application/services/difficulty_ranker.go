package services

import (
	"sort"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

// contactDifficulty is the ordering key for a contact: how scarce their
// acceptable slots are.
type contactDifficulty struct {
	contact       domain.Contact
	goodSlotCount int
	avgTopScore   float64
}

// RankByDifficulty orders contacts most-constrained first: ascending by
// the number of slots at or above the acceptability floor, then ascending
// by the mean of their top-10 scores, then by contact ID so full ties stay
// deterministic.
func RankByDifficulty(matrix *domain.QualityMatrix, contacts []domain.Contact, minAcceptable int) []domain.Contact {
	ranked := make([]contactDifficulty, 0, len(contacts))

	for _, c := range contacts {
		scores := make([]int, 0, len(matrix.SlotIDs()))
		good := 0
		for _, slotID := range matrix.SlotIDs() {
			score := matrix.Score(slotID, c.ID)
			scores = append(scores, score)
			if score >= minAcceptable {
				good++
			}
		}
		ranked = append(ranked, contactDifficulty{
			contact:       c,
			goodSlotCount: good,
			avgTopScore:   meanTopScores(scores, 10),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].goodSlotCount != ranked[j].goodSlotCount {
			return ranked[i].goodSlotCount < ranked[j].goodSlotCount
		}
		if ranked[i].avgTopScore != ranked[j].avgTopScore {
			return ranked[i].avgTopScore < ranked[j].avgTopScore
		}
		return ranked[i].contact.ID < ranked[j].contact.ID
	})

	ordered := make([]domain.Contact, len(ranked))
	for i, r := range ranked {
		ordered[i] = r.contact
	}
	return ordered
}

// meanTopScores averages the n highest scores, fewer if fewer exist.
func meanTopScores(scores []int, n int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sorted := make([]int, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	sum := 0
	for _, s := range sorted {
		sum += s
	}
	return float64(sum) / float64(len(sorted))
}
