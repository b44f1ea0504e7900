package domain

// ScoreBreakdown holds the three signed sub-scores behind a quality score.
type ScoreBreakdown struct {
	BaseScore    int
	DayScore     int
	DensityScore int
}

// QualityScore rates one (slot, contact) pair on a 0-100 scale. A score of
// zero is a sentinel meaning the slot is ineligible for the contact.
type QualityScore struct {
	Score     int
	LocalTime string // contact-local display, e.g. "Tue 10:00"
	Reasoning []string
	Breakdown ScoreBreakdown
}

// Eligible reports whether the slot can be offered at all.
func (q QualityScore) Eligible() bool {
	return q.Score > 0
}

// ClampScore bounds a raw additive score to [0, 100].
func ClampScore(raw int) int {
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return raw
}
