package domain

import "time"

// Slot is a candidate meeting interval of fixed duration. Its identifier
// is the start instant's canonical ISO-8601 UTC string, which doubles as a
// stable key across the quality matrix and assignments; because RFC 3339
// UTC strings sort lexicographically, sorted slot IDs are chronological.
type Slot struct {
	Start time.Time
	End   time.Time
}

// NewSlot creates a slot of the given duration starting at start.
func NewSlot(start time.Time, duration time.Duration) Slot {
	start = start.UTC()
	return Slot{Start: start, End: start.Add(duration)}
}

// ID returns the canonical slot identifier.
func (s Slot) ID() string {
	return s.Start.UTC().Format(time.RFC3339)
}

// Duration returns the slot length.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// ParseSlotID parses a slot identifier back to a slot of the given duration.
func ParseSlotID(id string, duration time.Duration) (Slot, error) {
	start, err := time.Parse(time.RFC3339, id)
	if err != nil {
		return Slot{}, err
	}
	return NewSlot(start, duration), nil
}
