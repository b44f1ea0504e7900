package domain

import "time"

// BusyInterval is a half-open interval [Start, End) during which the
// organizer is unavailable. Intervals may be adjacent or overlapping; the
// engine treats them as a set.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Widen expands the interval by the buffer on both ends.
func (b BusyInterval) Widen(buffer time.Duration) BusyInterval {
	return BusyInterval{Start: b.Start.Add(-buffer), End: b.End.Add(buffer)}
}

// Overlaps reports whether the interval intersects [start, end).
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}
