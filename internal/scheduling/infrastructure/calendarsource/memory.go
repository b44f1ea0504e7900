// Package calendarsource provides CalendarSource implementations for hosts
// and tests.
package calendarsource

import (
	"context"
	"sort"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

// InMemory serves busy intervals from a static list.
type InMemory struct {
	intervals []domain.BusyInterval
}

// NewInMemory creates an in-memory source from a fixed busy set.
func NewInMemory(intervals []domain.BusyInterval) *InMemory {
	sorted := make([]domain.BusyInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return &InMemory{intervals: sorted}
}

// Busy returns every interval intersecting the range.
func (s *InMemory) Busy(ctx context.Context, dateRange domain.DateRange) ([]domain.BusyInterval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.BusyInterval, 0, len(s.intervals))
	for _, iv := range s.intervals {
		if iv.Overlaps(dateRange.Start, dateRange.End) {
			out = append(out, iv)
		}
	}
	return out, nil
}
