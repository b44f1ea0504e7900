package services

import (
	"time"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
	"github.com/cordialhq/cordial/pkg/timeutil"
)

// Reasoning tags reused verbatim by explanation templates.
const (
	ReasonOutsideHours = "Outside working hours"
	ReasonPrimeTime    = "Prime meeting time"
	ReasonFridayPM     = "Friday afternoon - relaxed atmosphere"
	ReasonGoodSpacing  = "Good spacing from other meetings"
	ReasonHighDensity  = "Warning: High meeting density"
)

// QualityScorer rates a (slot, contact) pair with three additive
// sub-scores: base time, day of week, and organizer meeting density. Hour
// and weekday are always evaluated in the contact's zone; density is
// evaluated against the organizer's calendar, bucketed by the grouping
// zone's civil day.
type QualityScorer struct {
	config       domain.SchedulingConfig
	busy         []domain.BusyInterval
	groupingZone *time.Location
	dayCounts    map[string]int
}

// NewQualityScorer precomputes per-day busy counts. groupingZone is the
// organizer's zone when known, else UTC.
func NewQualityScorer(config domain.SchedulingConfig, busy []domain.BusyInterval, groupingZone *time.Location) *QualityScorer {
	if groupingZone == nil {
		groupingZone = time.UTC
	}
	counts := make(map[string]int)
	for _, b := range busy {
		counts[timeutil.LocalDayKey(b.Start, groupingZone)]++
	}
	return &QualityScorer{
		config:       config,
		busy:         busy,
		groupingZone: groupingZone,
		dayCounts:    counts,
	}
}

// Score rates one slot for one contact. hoursStart/hoursEnd are the
// contact's admissible local bounds; the default is the configured working
// hours, widened only for contacts under RELAX_CONSTRAINTS.
func (s *QualityScorer) Score(slot domain.Slot, contactZone *time.Location, hoursStart, hoursEnd float64) domain.QualityScore {
	local := slot.Start.In(contactZone)
	hour := local.Hour()
	display := local.Format("Mon 15:04")

	base := s.baseTimeScore(hour, local.Minute(), hoursStart, hoursEnd)
	if base == 0 {
		return domain.QualityScore{
			Score:     0,
			LocalTime: display,
			Reasoning: []string{ReasonOutsideHours},
		}
	}

	day := s.dayOfWeekScore(local.Weekday(), hour)
	density := s.densityScore(slot)

	score := domain.ClampScore(base + day + density)
	reasoning := make([]string, 0, 3)
	if hour == 10 || hour == 15 {
		reasoning = append(reasoning, ReasonPrimeTime)
	}
	if local.Weekday() == time.Friday && hour >= 14 {
		reasoning = append(reasoning, ReasonFridayPM)
	}
	if density > 0 {
		reasoning = append(reasoning, ReasonGoodSpacing)
	}
	if density < -10 {
		reasoning = append(reasoning, ReasonHighDensity)
	}

	return domain.QualityScore{
		Score:     score,
		LocalTime: display,
		Reasoning: reasoning,
		Breakdown: domain.ScoreBreakdown{BaseScore: base, DayScore: day, DensityScore: density},
	}
}

// baseTimeScore maps the contact-local hour to its desirability. Zero
// means hard ineligibility: the slot falls outside the admissible bounds.
func (s *QualityScorer) baseTimeScore(hour, minute int, hoursStart, hoursEnd float64) int {
	fractional := float64(hour) + float64(minute)/60
	if fractional < hoursStart || fractional >= hoursEnd {
		return 0
	}
	if hour >= s.config.LunchStart && hour < s.config.LunchEnd {
		return 30
	}
	switch hour {
	case 8:
		return 65
	case 9:
		return 75
	case 10:
		return 85
	case 11:
		return 80
	case 12:
		return 30
	case 13:
		return 50
	case 14:
		return 80
	case 15:
		return 85
	case 16:
		return 75
	case 17:
		return 60
	default:
		return 50
	}
}

func (s *QualityScorer) dayOfWeekScore(day time.Weekday, hour int) int {
	switch day {
	case time.Saturday, time.Sunday:
		// Vetoes the slot after clamping.
		return -100
	case time.Monday:
		score := -5
		if hour >= 14 {
			score += 5
		}
		return score
	case time.Friday:
		score := 10
		if s.config.ConsultantMode {
			score += 15
			if hour >= 14 {
				score += 10
			}
		}
		return score
	default: // Tuesday, Wednesday, Thursday
		return 10
	}
}

func (s *QualityScorer) densityScore(slot domain.Slot) int {
	score := 0

	switch count := s.dayCounts[timeutil.LocalDayKey(slot.Start, s.groupingZone)]; {
	case count >= 4:
		score -= 20
	case count >= 3:
		score -= 10
	}

	const backToBack = 30 * time.Minute
	const isolation = 2 * time.Hour

	adjacent := false
	isolated := true
	for _, b := range s.busy {
		if gap := slot.Start.Sub(b.End); gap >= 0 && gap <= backToBack {
			adjacent = true
		}
		if gap := b.Start.Sub(slot.End); gap >= 0 && gap <= backToBack {
			adjacent = true
		}
		if b.End.After(slot.Start.Add(-isolation)) && b.Start.Before(slot.End.Add(isolation)) {
			isolated = false
		}
	}
	if adjacent {
		score -= 15
	}
	if isolated {
		score += 10
	}

	return score
}
