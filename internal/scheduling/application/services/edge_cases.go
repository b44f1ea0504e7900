package services

import (
	"math"
	"sort"
	"time"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
	"github.com/cordialhq/cordial/pkg/timeutil"
)

// extremeOffsetHours is the organizer/contact UTC offset gap beyond which
// the relaxation rules apply.
const extremeOffsetHours = 12.0

// compromiseAverageFloor marks contacts whose eligible slots average below
// this score as scheduled on a compromise basis.
const compromiseAverageFloor = 50.0

// TriageAvailability inspects the candidate pool size before the matrix is
// built. Zero candidates or fewer candidates than contacts abort the
// batch; a pool too small for the full quota shrinks slotsPerContact and
// warns.
func TriageAvailability(candidates, contacts, slotsPerContact int) (int, *domain.Warning, error) {
	switch {
	case candidates == 0:
		return 0, nil, domain.NewNoAvailabilityError()
	case candidates < contacts:
		return 0, nil, domain.NewSevereShortageError(candidates, contacts)
	case candidates < contacts*slotsPerContact:
		adjusted := candidates / contacts
		warning := domain.NewReducedSlotsWarning(adjusted)
		return adjusted, &warning, nil
	default:
		return slotsPerContact, nil, nil
	}
}

// ExtremeTimezoneHandler detects contacts whose zone sits more than twelve
// hours from the organizer's and softens their constraints: contacts with
// no eligible slot at all get a relaxed-hours generation pass that
// augments the matrix; contacts with weak-but-present options are flagged
// as a compromise.
type ExtremeTimezoneHandler struct {
	config       domain.SchedulingConfig
	generator    *SlotGenerator
	scorer       *QualityScorer
	organizerLoc *time.Location
}

// NewExtremeTimezoneHandler wires the handler to the batch's generator and
// scorer. organizerLoc may be nil, in which case UTC stands in.
func NewExtremeTimezoneHandler(
	config domain.SchedulingConfig,
	generator *SlotGenerator,
	scorer *QualityScorer,
	organizerLoc *time.Location,
) *ExtremeTimezoneHandler {
	if organizerLoc == nil {
		organizerLoc = time.UTC
	}
	return &ExtremeTimezoneHandler{
		config:       config,
		generator:    generator,
		scorer:       scorer,
		organizerLoc: organizerLoc,
	}
}

// Review runs after the matrix is built and before contacts are ranked.
// It may widen the admissible bounds recorded for a contact and insert new
// slot rows. Weekends stay skipped under relaxation; only the hour bounds
// widen.
func (h *ExtremeTimezoneHandler) Review(
	matrix *domain.QualityMatrix,
	contacts []domain.Contact,
	bounds map[string]*contactBounds,
	busy []domain.BusyInterval,
	dateRange domain.DateRange,
) []domain.SpecialHandling {
	handling := make([]domain.SpecialHandling, 0)

	for _, contact := range contacts {
		b := bounds[contact.ID]
		offsetGap := timeutil.OffsetHours(dateRange.Start, h.organizerLoc) -
			timeutil.OffsetHours(dateRange.Start, b.zone)
		if math.Abs(offsetGap) <= extremeOffsetHours {
			continue
		}

		eligible, total := eligibleStats(matrix, contact.ID)
		switch {
		case eligible == 0:
			handling = append(handling, domain.NewRelaxConstraintsHandling(
				contact.ID, domain.RelaxedHoursStart, domain.RelaxedHoursEnd))
			b.hoursStart = domain.RelaxedHoursStart
			b.hoursEnd = domain.RelaxedHoursEnd
			h.augmentMatrix(matrix, contacts, bounds, busy, dateRange, b.zone)
		case total/float64(eligible) < compromiseAverageFloor:
			handling = append(handling, domain.NewCompromiseHandling(contact.ID))
		}
	}

	return handling
}

// augmentMatrix re-runs generation with the relaxed bounds in the affected
// contact's own zone, so candidates land across that contact's local
// relaxed window. Every generated slot is (re)scored for every contact
// under their current admissible bounds; re-scoring existing rows lets
// slots that were ineligible under the default bounds become eligible for
// the relaxed contact.
func (h *ExtremeTimezoneHandler) augmentMatrix(
	matrix *domain.QualityMatrix,
	contacts []domain.Contact,
	bounds map[string]*contactBounds,
	busy []domain.BusyInterval,
	dateRange domain.DateRange,
	contactZone *time.Location,
) {
	relaxed := h.generator.Generate(busy, dateRange, contactZone,
		domain.RelaxedHoursStart, domain.RelaxedHoursEnd)

	for _, slot := range relaxed {
		if !matrix.HasSlot(slot.ID()) {
			matrix.AddSlot(slot.ID())
		}
		for _, c := range contacts {
			b := bounds[c.ID]
			matrix.Set(slot.ID(), c.ID, h.scorer.Score(slot, b.zone, b.hoursStart, b.hoursEnd))
		}
	}
}

// eligibleStats returns the count and score sum of a contact's non-zero
// cells.
func eligibleStats(matrix *domain.QualityMatrix, contactID string) (int, float64) {
	count := 0
	sum := 0.0
	for _, slotID := range matrix.SlotIDs() {
		if score := matrix.Score(slotID, contactID); score > 0 {
			count++
			sum += float64(score)
		}
	}
	return count, sum
}

// DetectMeetingOverload unions the organizer's busy intervals with the
// chosen slots, buckets them by the grouping zone's civil day, and reports
// days whose count exceeds the threshold.
func DetectMeetingOverload(
	busy []domain.BusyInterval,
	chosen []domain.Slot,
	groupingZone *time.Location,
	threshold int,
) *domain.Warning {
	if groupingZone == nil {
		groupingZone = time.UTC
	}
	counts := make(map[string]int)
	for _, b := range busy {
		counts[timeutil.LocalDayKey(b.Start, groupingZone)]++
	}
	for _, s := range chosen {
		counts[timeutil.LocalDayKey(s.Start, groupingZone)]++
	}

	days := make([]domain.DayLoad, 0)
	for day, count := range counts {
		if count > threshold {
			days = append(days, domain.DayLoad{Day: day, Count: count})
		}
	}
	if len(days) == 0 {
		return nil
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	warning := domain.NewMeetingOverloadWarning(days)
	return &warning
}
