package domain

import "fmt"

// WarningCode identifies a per-batch, non-fatal diagnostic.
type WarningCode string

const (
	WarnReducedSlots     WarningCode = "REDUCED_SLOTS"
	WarnMeetingOverload  WarningCode = "MEETING_OVERLOAD"
	WarnDeadlineExceeded WarningCode = "DEADLINE_EXCEEDED"
)

// DayLoad records the meeting count on one organizer-local day.
type DayLoad struct {
	Day   string `json:"day"` // "2006-01-02" in the grouping zone
	Count int    `json:"count"`
}

// Warning is a per-batch diagnostic attached to a successful result.
type Warning struct {
	Code                    WarningCode `json:"code"`
	Message                 string      `json:"message"`
	AdjustedSlotsPerContact int         `json:"adjustedSlotsPerContact,omitempty"`
	OverloadDays            []DayLoad   `json:"overloadDays,omitempty"`
}

// NewReducedSlotsWarning reports a per-contact slot count adjustment.
func NewReducedSlotsWarning(adjusted int) Warning {
	return Warning{
		Code:                    WarnReducedSlots,
		Message:                 fmt.Sprintf("not enough candidate slots; reduced to %d per contact", adjusted),
		AdjustedSlotsPerContact: adjusted,
	}
}

// NewMeetingOverloadWarning reports days exceeding the meeting threshold.
func NewMeetingOverloadWarning(days []DayLoad) Warning {
	return Warning{
		Code:         WarnMeetingOverload,
		Message:      fmt.Sprintf("%d day(s) exceed the meeting density threshold", len(days)),
		OverloadDays: days,
	}
}

// NewDeadlineExceededWarning marks a best-effort partial result.
func NewDeadlineExceededWarning() Warning {
	return Warning{
		Code:    WarnDeadlineExceeded,
		Message: "soft deadline expired; returning the best assignment found so far",
	}
}

// HandlingCode identifies a per-contact divergence from default behavior.
type HandlingCode string

const (
	HandlingRelaxConstraints HandlingCode = "RELAX_CONSTRAINTS"
	HandlingCompromise       HandlingCode = "COMPROMISE"
)

// SpecialHandling is a per-contact, non-fatal notice.
type SpecialHandling struct {
	ContactID    string       `json:"contactId"`
	Code         HandlingCode `json:"code"`
	Message      string       `json:"message"`
	RelaxedStart float64      `json:"relaxedStart,omitempty"`
	RelaxedEnd   float64      `json:"relaxedEnd,omitempty"`
}

// NewRelaxConstraintsHandling records relaxed working-hour bounds.
func NewRelaxConstraintsHandling(contactID string, start, end float64) SpecialHandling {
	return SpecialHandling{
		ContactID:    contactID,
		Code:         HandlingRelaxConstraints,
		Message:      fmt.Sprintf("extreme timezone gap; working hours relaxed to %.0f:00-%.0f:00 local", start, end),
		RelaxedStart: start,
		RelaxedEnd:   end,
	}
}

// NewCompromiseHandling records a low-quality but workable schedule.
func NewCompromiseHandling(contactID string) SpecialHandling {
	return SpecialHandling{
		ContactID: contactID,
		Code:      HandlingCompromise,
		Message:   "timezone gap limits slot quality; times are a compromise for this contact",
	}
}
