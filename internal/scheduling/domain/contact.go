package domain

import (
	"time"

	"github.com/cordialhq/cordial/pkg/timeutil"
)

// Contact is a coffee-chat participant to schedule against the organizer's
// calendar. Contacts are read-only inputs for the duration of a batch.
type Contact struct {
	ID       string
	Name     string
	Timezone string // IANA zone name, e.g. "America/New_York"
}

// ResolveZone resolves the contact's IANA timezone through the batch cache.
func (c Contact) ResolveZone(zones *timeutil.ZoneCache) (*time.Location, error) {
	loc, err := zones.Load(c.Timezone)
	if err != nil {
		return nil, NewInvalidTimezoneError(c.Timezone)
	}
	return loc, nil
}
