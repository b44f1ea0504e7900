package domain

import "time"

// MaxRangeSpan bounds the length of a scheduling window.
const MaxRangeSpan = 30 * 24 * time.Hour

// DateRange is a half-open interval [Start, End) of absolute instants.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates and creates a date range.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, NewInvalidDateRangeError("start must be before end")
	}
	if end.Sub(start) > MaxRangeSpan {
		return DateRange{}, NewInvalidDateRangeError("range exceeds 30 days")
	}
	return DateRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Span returns the length of the range.
func (r DateRange) Span() time.Duration {
	return r.End.Sub(r.Start)
}

// ContainsInterval reports whether [start, end) lies entirely in the range.
func (r DateRange) ContainsInterval(start, end time.Time) bool {
	return !start.Before(r.Start) && !end.After(r.End)
}
