// Package api maps engine results to the wire shape consumed by
// downstream clients. The engine itself performs no transport; a host
// embedding it serializes these types directly.
package api

import (
	"errors"
	"time"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

// Response is the top-level success payload for one batch.
type Response struct {
	Success  bool            `json:"success"`
	Results  []ContactResult `json:"results"`
	Metadata Metadata        `json:"metadata"`
}

// ErrorResponse is the payload for a failed batch. Field names and the
// flat shape are load-bearing for existing clients.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ContactResult is one contact's slice of the batch outcome.
type ContactResult struct {
	ContactID         string             `json:"contactId"`
	ContactName       string             `json:"contactName"`
	ContactTimezone   string             `json:"contactTimezone"`
	SuggestedSlots    []SuggestedSlot    `json:"suggestedSlots"`
	AlternativeAction *AlternativeAction `json:"alternativeAction,omitempty"`
}

// SuggestedSlot is one emitted slot. Start and End are RFC 3339 UTC.
type SuggestedSlot struct {
	Start              string      `json:"start"`
	End                string      `json:"end"`
	Score              int         `json:"score"`
	Reasoning          []string    `json:"reasoning,omitempty"`
	UserDisplayTime    string      `json:"userDisplayTime"`
	ContactDisplayTime string      `json:"contactDisplayTime"`
	Explanation        Explanation `json:"explanation"`
	BelowThreshold     bool        `json:"belowThreshold,omitempty"`
}

// Explanation mirrors domain.Explanation with wire tags.
type Explanation struct {
	Primary  string   `json:"primary"`
	Factors  []string `json:"factors"`
	Warnings []string `json:"warnings"`
}

// AlternativeAction advises the organizer when defaults could not be met.
type AlternativeAction struct {
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

// Metadata summarizes the run for clients.
type Metadata struct {
	TotalSlotsAnalyzed int                      `json:"totalSlotsAnalyzed"`
	AverageQuality     float64                  `json:"averageQuality"`
	FairnessScore      float64                  `json:"fairnessScore"`
	ProcessingTime     int64                    `json:"processingTime"`
	Algorithm          string                   `json:"algorithm"`
	Warnings           []domain.Warning         `json:"warnings,omitempty"`
	SpecialHandling    []domain.SpecialHandling `json:"specialHandling,omitempty"`
}

// FromBatchResult converts the engine's output into the wire shape.
func FromBatchResult(result *domain.BatchResult) Response {
	results := make([]ContactResult, 0, len(result.Results))
	for _, cr := range result.Results {
		results = append(results, fromContactResult(cr))
	}
	return Response{
		Success: true,
		Results: results,
		Metadata: Metadata{
			TotalSlotsAnalyzed: result.Metadata.TotalSlotsAnalyzed,
			AverageQuality:     result.Metadata.AverageQuality,
			FairnessScore:      result.Metadata.FairnessScore,
			ProcessingTime:     result.Metadata.ProcessingTimeMS,
			Algorithm:          result.Metadata.Algorithm,
			Warnings:           result.Metadata.Warnings,
			SpecialHandling:    result.Metadata.SpecialHandling,
		},
	}
}

// FromError converts any engine error into the wire error shape. Errors
// outside the engine's taxonomy map to INTERNAL_ERROR.
func FromError(err error) ErrorResponse {
	var schedErr *domain.SchedulingError
	if !errors.As(err, &schedErr) {
		return ErrorResponse{
			Success: false,
			Error:   "INTERNAL_ERROR",
			Message: err.Error(),
		}
	}
	return ErrorResponse{
		Success:    false,
		Error:      string(schedErr.Code),
		Message:    schedErr.Message,
		Suggestion: schedErr.Suggestion,
	}
}

func fromContactResult(cr domain.ContactResult) ContactResult {
	slots := make([]SuggestedSlot, 0, len(cr.SuggestedSlots))
	for _, s := range cr.SuggestedSlots {
		slots = append(slots, SuggestedSlot{
			Start:              s.Slot.Start.UTC().Format(time.RFC3339),
			End:                s.Slot.End.UTC().Format(time.RFC3339),
			Score:              s.Score,
			Reasoning:          s.Reasoning,
			UserDisplayTime:    s.UserDisplayTime,
			ContactDisplayTime: s.ContactDisplayTime,
			Explanation: Explanation{
				Primary:  s.Explanation.Primary,
				Factors:  emptyIfNil(s.Explanation.Factors),
				Warnings: emptyIfNil(s.Explanation.Warnings),
			},
			BelowThreshold: s.BelowThreshold,
		})
	}

	var alt *AlternativeAction
	if cr.AlternativeAction != nil {
		alt = &AlternativeAction{
			Reason:     cr.AlternativeAction.Reason,
			Suggestion: cr.AlternativeAction.Suggestion,
		}
	}

	return ContactResult{
		ContactID:         cr.Contact.ID,
		ContactName:       cr.Contact.Name,
		ContactTimezone:   cr.Contact.Timezone,
		SuggestedSlots:    slots,
		AlternativeAction: alt,
	}
}

// emptyIfNil keeps the wire arrays present even when empty.
func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
