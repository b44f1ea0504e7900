package domain

// SchedulingConfig enumerates every recognized engine option. Each field
// replaces the literal constant it names; no dynamic tuning happens inside
// the engine.
type SchedulingConfig struct {
	// Hard constraints.
	WorkingHoursStart     float64 // local hour, 24h clock
	WorkingHoursEnd       float64 // local hour, may be fractional
	BufferMinutes         int
	SlotMinutes           int
	GenerationStepMinutes int
	SkipWeekends          bool
	DaysAhead             int

	// Soft scoring.
	LunchStart             int
	LunchEnd               int
	LookaheadDepth         int
	LookaheadWeight        float64
	MinimumAcceptableScore int
	ConsultantMode         bool

	// Batch limits.
	MaxContactsPerBatch    int
	DefaultSlotsPerContact int
	OverloadThreshold      int // meetings per organizer day before warning
}

// DefaultSchedulingConfig returns the documented defaults.
func DefaultSchedulingConfig() SchedulingConfig {
	return SchedulingConfig{
		WorkingHoursStart:      8,
		WorkingHoursEnd:        18,
		BufferMinutes:          15,
		SlotMinutes:            60,
		GenerationStepMinutes:  30,
		SkipWeekends:           true,
		DaysAhead:              14,
		LunchStart:             12,
		LunchEnd:               13,
		LookaheadDepth:         2,
		LookaheadWeight:        0.3,
		MinimumAcceptableScore: 60,
		ConsultantMode:         false,
		MaxContactsPerBatch:    10,
		DefaultSlotsPerContact: 3,
		OverloadThreshold:      4,
	}
}

// Relaxed working-hour bounds applied under RELAX_CONSTRAINTS.
const (
	RelaxedHoursStart = 7.0
	RelaxedHoursEnd   = 19.0
)

// ClampSlotsPerContact normalizes a requested slots-per-contact value.
func (c SchedulingConfig) ClampSlotsPerContact(requested int) int {
	if requested <= 0 {
		return c.DefaultSlotsPerContact
	}
	if requested > 10 {
		return 10
	}
	return requested
}
