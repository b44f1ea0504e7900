package services

import (
	"time"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
	"github.com/cordialhq/cordial/pkg/timeutil"
)

// contactBounds carries a contact's resolved zone and admissible local
// working-hour bounds for scoring.
type contactBounds struct {
	zone       *time.Location
	hoursStart float64
	hoursEnd   float64
}

// resolveContactBounds resolves every contact's zone once per batch with
// the default admissible bounds.
func resolveContactBounds(contacts []domain.Contact, zones *timeutil.ZoneCache, config domain.SchedulingConfig) (map[string]*contactBounds, error) {
	bounds := make(map[string]*contactBounds, len(contacts))
	for _, c := range contacts {
		loc, err := c.ResolveZone(zones)
		if err != nil {
			return nil, err
		}
		bounds[c.ID] = &contactBounds{
			zone:       loc,
			hoursStart: config.WorkingHoursStart,
			hoursEnd:   config.WorkingHoursEnd,
		}
	}
	return bounds, nil
}

// BuildQualityMatrix scores every (slot, contact) pair once. Ineligible
// cells are stored with score zero, not omitted; later phases read only
// from the matrix.
func BuildQualityMatrix(
	slots []domain.Slot,
	contacts []domain.Contact,
	bounds map[string]*contactBounds,
	scorer *QualityScorer,
) *domain.QualityMatrix {
	slotIDs := make([]string, len(slots))
	for i, s := range slots {
		slotIDs[i] = s.ID()
	}
	contactIDs := make([]string, len(contacts))
	for i, c := range contacts {
		contactIDs[i] = c.ID
	}

	matrix := domain.NewQualityMatrix(slotIDs, contactIDs)
	for _, slot := range slots {
		for _, c := range contacts {
			b := bounds[c.ID]
			matrix.Set(slot.ID(), c.ID, scorer.Score(slot, b.zone, b.hoursStart, b.hoursEnd))
		}
	}
	return matrix
}
