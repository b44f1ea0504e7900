package domain

import "fmt"

// ErrorCode identifies an engine-local failure class. The surrounding HTTP
// layer maps codes to status codes.
type ErrorCode string

const (
	CodeNoAvailability   ErrorCode = "NO_AVAILABILITY"
	CodeSevereShortage   ErrorCode = "SEVERE_SHORTAGE"
	CodeInvalidTimezone  ErrorCode = "INVALID_TIMEZONE"
	CodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	CodePastDateRange    ErrorCode = "PAST_DATE_RANGE"
	CodeTooManyContacts  ErrorCode = "TOO_MANY_CONTACTS"
)

// SchedulingError carries a machine-readable code, a human message, and a
// suggestion string when one is actionable.
type SchedulingError struct {
	Code       ErrorCode
	Message    string
	Suggestion string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNoAvailabilityError signals that the generator produced zero candidates.
func NewNoAvailabilityError() *SchedulingError {
	return &SchedulingError{
		Code:       CodeNoAvailability,
		Message:    "no candidate slots are available in the requested range",
		Suggestion: "extend the date range or free up time on your calendar",
	}
}

// NewSevereShortageError signals fewer candidates than contacts.
func NewSevereShortageError(candidates, contacts int) *SchedulingError {
	return &SchedulingError{
		Code:       CodeSevereShortage,
		Message:    fmt.Sprintf("only %d candidate slots for %d contacts", candidates, contacts),
		Suggestion: "extend the date range or reduce the number of contacts",
	}
}

// NewInvalidTimezoneError signals an unresolvable IANA zone.
func NewInvalidTimezoneError(zone string) *SchedulingError {
	return &SchedulingError{
		Code:       CodeInvalidTimezone,
		Message:    fmt.Sprintf("timezone %q does not resolve to an IANA zone", zone),
		Suggestion: "use a canonical IANA name such as \"Europe/Berlin\"",
	}
}

// NewInvalidDateRangeError signals a reversed or oversized range.
func NewInvalidDateRangeError(reason string) *SchedulingError {
	return &SchedulingError{
		Code:       CodeInvalidDateRange,
		Message:    "invalid date range: " + reason,
		Suggestion: "provide a start before end spanning at most 30 days",
	}
}

// NewPastDateRangeError signals a range starting more than 24h in the past.
func NewPastDateRangeError() *SchedulingError {
	return &SchedulingError{
		Code:       CodePastDateRange,
		Message:    "date range starts more than 24 hours in the past",
		Suggestion: "move the range start to the future",
	}
}

// NewTooManyContactsError signals a batch over the contact limit.
func NewTooManyContactsError(got, limit int) *SchedulingError {
	return &SchedulingError{
		Code:       CodeTooManyContacts,
		Message:    fmt.Sprintf("%d contacts exceed the batch limit of %d", got, limit),
		Suggestion: "split the contacts across multiple batches",
	}
}
