// Package timeutil provides IANA timezone conversion and DST-aware
// wall-clock arithmetic for the scheduling engine. All instants are UTC;
// wall-clock components only exist relative to a zone.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownZone is returned when an IANA timezone string does not resolve.
var ErrUnknownZone = errors.New("unknown IANA timezone")

// WallClock holds the civil time components of an instant in some zone.
type WallClock struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Weekday time.Weekday
}

// WallClockAt returns the wall clock of t in loc.
func WallClockAt(t time.Time, loc *time.Location) WallClock {
	local := t.In(loc)
	return WallClock{
		Year:    local.Year(),
		Month:   local.Month(),
		Day:     local.Day(),
		Hour:    local.Hour(),
		Minute:  local.Minute(),
		Weekday: local.Weekday(),
	}
}

// FromWallClock converts civil components in loc to an instant.
//
// During a DST spring-forward gap the requested wall time does not exist;
// the result is the later valid instant (time.Date normalizes forward).
// During a fall-back overlap the wall time exists twice; the result is the
// earlier instant.
func FromWallClock(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)

	// time.Date may resolve an ambiguous wall time to the repeated (later)
	// occurrence. If the instant one hour earlier reads the same wall
	// clock, the wall time is ambiguous and the earlier instant wins.
	if earlier := t.Add(-time.Hour); earlier.In(loc).Hour() == t.In(loc).Hour() &&
		earlier.In(loc).Minute() == t.In(loc).Minute() &&
		earlier.In(loc).Day() == t.In(loc).Day() {
		t = earlier
	}
	return t
}

// SameLocalDay reports whether a and b fall on the same civil day in loc.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}

// HourIn returns the hour-of-day of t in loc.
func HourIn(t time.Time, loc *time.Location) int {
	return t.In(loc).Hour()
}

// WeekdayIn returns the day-of-week of t in loc.
func WeekdayIn(t time.Time, loc *time.Location) time.Weekday {
	return t.In(loc).Weekday()
}

// LocalDayKey returns a stable bucket key for the civil day of t in loc.
func LocalDayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// OffsetHours returns the current UTC offset of loc at instant t, in hours.
func OffsetHours(t time.Time, loc *time.Location) float64 {
	_, offset := t.In(loc).Zone()
	return float64(offset) / 3600
}

// ZoneCache memoizes IANA zone lookups for the duration of one batch.
// It is not safe for concurrent use; each batch owns its own cache.
type ZoneCache struct {
	zones map[string]*time.Location
}

// NewZoneCache creates an empty zone cache.
func NewZoneCache() *ZoneCache {
	return &ZoneCache{zones: make(map[string]*time.Location)}
}

// Load resolves an IANA timezone name, caching the result.
func (c *ZoneCache) Load(name string) (*time.Location, error) {
	if loc, ok := c.zones[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	c.zones[name] = loc
	return loc, nil
}
