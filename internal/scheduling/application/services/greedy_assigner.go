package services

import (
	"sort"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

// GreedyAssigner assigns slots per contact in difficulty order. Each
// candidate's effective value is its immediate score minus a lookahead
// penalty reflecting how much taking it would depress the best remaining
// options of the next few contacts.
type GreedyAssigner struct {
	config domain.SchedulingConfig
}

// NewGreedyAssigner creates an assigner with the given configuration.
func NewGreedyAssigner(config domain.SchedulingConfig) *GreedyAssigner {
	return &GreedyAssigner{config: config}
}

// rankedSlot is a slot in one contact's descending preference order.
type rankedSlot struct {
	slotID string
	score  int
}

// Assign walks the ordered contacts and takes up to slotsPerContact slots
// each. Slots at or above the acceptability floor are preferred; when the
// pool cannot cover the quota, below-floor slots fill the remainder in the
// same effective order.
func (g *GreedyAssigner) Assign(
	matrix *domain.QualityMatrix,
	ordered []domain.Contact,
	slotsPerContact int,
) *domain.Assignment {
	assignment := domain.NewAssignment()

	// Per-contact descending score lists, computed once; the lookahead
	// reads the best not-yet-used entry instead of rescanning the matrix.
	prefs := make(map[string][]rankedSlot, len(ordered))
	for _, c := range ordered {
		prefs[c.ID] = rankSlotsForContact(matrix, c.ID)
	}

	for i, contact := range ordered {
		remaining := ordered[i+1:]
		candidates := g.effectiveOrder(matrix, assignment, contact.ID, remaining, prefs)

		// Acceptable slots first, spread over distinct days when the pool
		// allows it; then acceptable slots regardless of day; then a
		// below-threshold fill in the same effective order. Days are UTC
		// civil days, so the spread is identical for every contact even
		// when a contact's local day straddles two UTC days.
		taken := 0
		takenDays := make(map[string]struct{}, slotsPerContact)
		for _, cand := range candidates {
			if taken >= slotsPerContact {
				break
			}
			if cand.score < g.config.MinimumAcceptableScore {
				continue
			}
			day := slotDay(cand.slotID)
			if _, dup := takenDays[day]; dup {
				continue
			}
			if assignment.Assign(contact.ID, cand.slotID) {
				takenDays[day] = struct{}{}
				taken++
			}
		}
		for _, cand := range candidates {
			if taken >= slotsPerContact {
				break
			}
			if cand.score < g.config.MinimumAcceptableScore || assignment.IsUsed(cand.slotID) {
				continue
			}
			if assignment.Assign(contact.ID, cand.slotID) {
				taken++
			}
		}
		for _, cand := range candidates {
			if taken >= slotsPerContact {
				break
			}
			if assignment.IsUsed(cand.slotID) {
				continue
			}
			if assignment.Assign(contact.ID, cand.slotID) {
				taken++
			}
		}
	}

	return assignment
}

// slotDay extracts the UTC civil day from a slot identifier. Slot IDs are
// RFC 3339 UTC strings, so the day is the first ten bytes.
func slotDay(slotID string) string {
	if len(slotID) < 10 {
		return slotID
	}
	return slotID[:10]
}

// effectiveCandidate pairs a free slot with its lookahead-adjusted value.
type effectiveCandidate struct {
	slotID    string
	score     int // immediate matrix score, clamped
	raw       int // unclamped sub-score sum, breaks clamp-induced ties
	effective float64
}

// effectiveOrder ranks the free slots for one contact by immediate score
// plus lookahead impact, descending. Because clamping flattens every
// strong slot to 100, equal effective values fall back to the unclamped
// sub-score sum; the final tie-break is the slot ID.
func (g *GreedyAssigner) effectiveOrder(
	matrix *domain.QualityMatrix,
	assignment *domain.Assignment,
	contactID string,
	remaining []domain.Contact,
	prefs map[string][]rankedSlot,
) []effectiveCandidate {
	candidates := make([]effectiveCandidate, 0, len(matrix.SlotIDs()))
	for _, slotID := range matrix.SlotIDs() {
		if assignment.IsUsed(slotID) {
			continue
		}
		quality, _ := matrix.Get(slotID, contactID)
		impact := g.lookaheadImpact(slotID, remaining, assignment, prefs)
		raw := quality.Breakdown.BaseScore + quality.Breakdown.DayScore + quality.Breakdown.DensityScore
		candidates = append(candidates, effectiveCandidate{
			slotID:    slotID,
			score:     quality.Score,
			raw:       raw,
			effective: float64(quality.Score) + impact,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].effective != candidates[j].effective {
			return candidates[i].effective > candidates[j].effective
		}
		if candidates[i].raw != candidates[j].raw {
			return candidates[i].raw > candidates[j].raw
		}
		return candidates[i].slotID < candidates[j].slotID
	})
	return candidates
}

// lookaheadImpact returns the (non-positive) penalty for taking slotID now.
// For each of the next lookaheadDepth contacts, it measures how far their
// best available score would drop once slotID leaves the pool, and scales
// the summed drop by lookaheadWeight. The weight is applied exactly once,
// here.
func (g *GreedyAssigner) lookaheadImpact(
	slotID string,
	remaining []domain.Contact,
	assignment *domain.Assignment,
	prefs map[string][]rankedSlot,
) float64 {
	depth := g.config.LookaheadDepth
	if depth == 0 || len(remaining) == 0 {
		return 0
	}
	if depth > len(remaining) {
		depth = len(remaining)
	}

	impact := 0
	for _, future := range remaining[:depth] {
		currentBest := bestAvailable(prefs[future.ID], assignment, "")
		futureBest := bestAvailable(prefs[future.ID], assignment, slotID)
		impact += currentBest - futureBest
	}
	return -float64(impact) * g.config.LookaheadWeight
}

// bestAvailable returns the highest score among slots not yet used and not
// equal to excluded; zero when nothing remains.
func bestAvailable(ranked []rankedSlot, assignment *domain.Assignment, excluded string) int {
	for _, r := range ranked {
		if r.slotID == excluded || assignment.IsUsed(r.slotID) {
			continue
		}
		return r.score
	}
	return 0
}

// rankSlotsForContact sorts one contact's column by score descending, then
// slot ID ascending for determinism.
func rankSlotsForContact(matrix *domain.QualityMatrix, contactID string) []rankedSlot {
	ranked := make([]rankedSlot, 0, len(matrix.SlotIDs()))
	for _, slotID := range matrix.SlotIDs() {
		ranked = append(ranked, rankedSlot{slotID: slotID, score: matrix.Score(slotID, contactID)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].slotID < ranked[j].slotID
	})
	return ranked
}
