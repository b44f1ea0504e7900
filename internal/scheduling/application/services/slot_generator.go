package services

import (
	"math"
	"time"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
	"github.com/cordialhq/cordial/pkg/timeutil"
)

// SlotGenerator enumerates candidate slots against the organizer's busy
// intervals. Day boundaries are aligned in a generation zone; contact-local
// admissibility is enforced later by the scorer so one candidate set can
// serve every contact in the batch.
type SlotGenerator struct {
	config domain.SchedulingConfig
}

// NewSlotGenerator creates a generator with the given configuration.
func NewSlotGenerator(config domain.SchedulingConfig) *SlotGenerator {
	return &SlotGenerator{config: config}
}

// Generate returns candidate slots in ascending start order. Working-hour
// bounds are fractional hours in the generation zone. Every emitted slot
// lies inside dateRange, starts on a generation-step boundary from the
// day's working-window start, and its buffered form is disjoint from every
// buffered busy interval.
func (g *SlotGenerator) Generate(
	busy []domain.BusyInterval,
	dateRange domain.DateRange,
	zone *time.Location,
	hoursStart, hoursEnd float64,
) []domain.Slot {
	buffer := time.Duration(g.config.BufferMinutes) * time.Minute
	slotLen := time.Duration(g.config.SlotMinutes) * time.Minute
	step := time.Duration(g.config.GenerationStepMinutes) * time.Minute

	// The buffered set is the comparison surface. It is not merged; a
	// candidate excluded twice stays excluded.
	buffered := make([]domain.BusyInterval, len(busy))
	for i, b := range busy {
		buffered[i] = b.Widen(buffer)
	}

	base := timeutil.WallClockAt(dateRange.Start, zone)
	slots := make([]domain.Slot, 0, g.config.DaysAhead*16)

	for offset := 0; offset < g.config.DaysAhead; offset++ {
		dayStart := wallTimeOnDay(base, offset, hoursStart, zone)
		dayEnd := wallTimeOnDay(base, offset, hoursEnd, zone)

		if g.config.SkipWeekends {
			wd := timeutil.WeekdayIn(dayStart, zone)
			if wd == time.Saturday || wd == time.Sunday {
				continue
			}
		}

		for candidate := dayStart; !candidate.Add(slotLen).After(dayEnd); candidate = candidate.Add(step) {
			end := candidate.Add(slotLen)
			if !dateRange.ContainsInterval(candidate, end) {
				continue
			}
			if conflictsBuffered(buffered, candidate, end) {
				continue
			}
			slots = append(slots, domain.Slot{Start: candidate.UTC(), End: end.UTC()})
		}
	}

	return slots
}

// wallTimeOnDay resolves a fractional local hour on the base day plus an
// offset of civil days, honoring DST through the zone conversion.
func wallTimeOnDay(base timeutil.WallClock, dayOffset int, fractionalHour float64, zone *time.Location) time.Time {
	hour := int(math.Floor(fractionalHour))
	minute := int(math.Round((fractionalHour - math.Floor(fractionalHour)) * 60))
	return timeutil.FromWallClock(base.Year, base.Month, base.Day+dayOffset, hour, minute, zone)
}

func conflictsBuffered(buffered []domain.BusyInterval, start, end time.Time) bool {
	for _, b := range buffered {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
