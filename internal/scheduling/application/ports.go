// Package application defines the ports the scheduling engine consumes.
package application

import (
	"context"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

// CalendarSource supplies the organizer's busy intervals. The host resolves
// it before invoking the engine; the engine itself performs no I/O.
// Implementations return every interval fully or partially intersecting the
// range, in any order; overlapping and adjacent intervals are tolerated.
type CalendarSource interface {
	Busy(ctx context.Context, dateRange domain.DateRange) ([]domain.BusyInterval, error)
}
