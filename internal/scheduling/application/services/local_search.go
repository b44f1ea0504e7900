package services

import (
	"context"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

// LocalSearchOptimizer improves an assignment by pairwise slot swaps. Each
// pass enumerates all contact pairs and all slot pairs between them in a
// fixed order; a swap is applied greedily when it raises the pair's summed
// score and both sides stay at or above the acceptability floor. The total
// assignment score is therefore non-decreasing across passes.
type LocalSearchOptimizer struct {
	maxIterations int
	minAcceptable int
}

// NewLocalSearchOptimizer creates an optimizer bounded by maxIterations
// full passes.
func NewLocalSearchOptimizer(maxIterations, minAcceptable int) *LocalSearchOptimizer {
	return &LocalSearchOptimizer{maxIterations: maxIterations, minAcceptable: minAcceptable}
}

// Optimize mutates the assignment in place and returns the number of
// completed passes and applied swaps. It stops when a full pass yields no
// swap, the iteration cap is hit, or ctx expires between passes.
func (o *LocalSearchOptimizer) Optimize(
	ctx context.Context,
	assignment *domain.Assignment,
	matrix *domain.QualityMatrix,
	contactOrder []string,
) (passes, swaps int) {
	for passes < o.maxIterations {
		if ctx.Err() != nil {
			return passes, swaps
		}
		changed := o.runPass(assignment, matrix, contactOrder)
		passes++
		swaps += changed
		if changed == 0 {
			break
		}
	}
	return passes, swaps
}

func (o *LocalSearchOptimizer) runPass(
	assignment *domain.Assignment,
	matrix *domain.QualityMatrix,
	contactOrder []string,
) int {
	swaps := 0
	for i := 0; i < len(contactOrder); i++ {
		for j := i + 1; j < len(contactOrder); j++ {
			c1, c2 := contactOrder[i], contactOrder[j]
			slots1 := assignment.Slots(c1)
			slots2 := assignment.Slots(c2)

			for a := 0; a < len(slots1); a++ {
				for b := 0; b < len(slots2); b++ {
					s1, s2 := slots1[a], slots2[b]

					current := matrix.Score(s1, c1) + matrix.Score(s2, c2)
					swapped := matrix.Score(s2, c1) + matrix.Score(s1, c2)

					if swapped <= current {
						continue
					}
					if matrix.Score(s2, c1) < o.minAcceptable || matrix.Score(s1, c2) < o.minAcceptable {
						continue
					}
					if assignment.Swap(c1, s1, c2, s2) {
						swaps++
						// Continue scanning with the updated sequences.
						slots1 = assignment.Slots(c1)
						slots2 = assignment.Slots(c2)
					}
				}
			}
		}
	}
	return swaps
}
