package api

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

func sampleResult() *domain.BatchResult {
	start := time.Date(2026, time.March, 3, 15, 0, 0, 0, time.UTC)
	return &domain.BatchResult{
		Results: []domain.ContactResult{{
			Contact: domain.Contact{ID: "alice", Name: "Alice", Timezone: "America/New_York"},
			SuggestedSlots: []domain.SuggestedSlot{{
				Slot:               domain.NewSlot(start, time.Hour),
				Score:              92,
				Reasoning:          []string{"Prime meeting time"},
				Explanation:        domain.Explanation{Primary: "Strong morning slot at Tue 10:00 (America/New_York)"},
				UserDisplayTime:    "Tue, Mar 3 at 10:00 AM EST",
				ContactDisplayTime: "Tue, Mar 3 at 10:00 AM EST",
			}},
			AlternativeAction: &domain.AlternativeAction{
				Reason:     "large timezone gap with Alice",
				Suggestion: "consider an async introduction",
			},
		}},
		Metadata: domain.BatchMetadata{
			RunID:              "run-1",
			TotalSlotsAnalyzed: 180,
			AverageQuality:     84.5,
			FairnessScore:      97.2,
			ProcessingTimeMS:   12,
			Algorithm:          domain.AlgorithmVersion,
		},
	}
}

func TestFromBatchResult_WireShape(t *testing.T) {
	resp := FromBatchResult(sampleResult())

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, true, decoded["success"])

	results := decoded["results"].([]any)
	require.Len(t, results, 1)
	contact := results[0].(map[string]any)
	assert.Equal(t, "alice", contact["contactId"])
	assert.Equal(t, "Alice", contact["contactName"])
	assert.Equal(t, "America/New_York", contact["contactTimezone"])

	slots := contact["suggestedSlots"].([]any)
	require.Len(t, slots, 1)
	slot := slots[0].(map[string]any)
	assert.Equal(t, "2026-03-03T15:00:00Z", slot["start"])
	assert.Equal(t, "2026-03-03T16:00:00Z", slot["end"])
	assert.Equal(t, float64(92), slot["score"])
	assert.NotEmpty(t, slot["userDisplayTime"])

	explanation := slot["explanation"].(map[string]any)
	assert.NotEmpty(t, explanation["primary"])
	// Factors and warnings serialize as arrays even when empty.
	assert.NotNil(t, explanation["factors"])
	assert.NotNil(t, explanation["warnings"])

	action := contact["alternativeAction"].(map[string]any)
	assert.Equal(t, "large timezone gap with Alice", action["reason"])

	metadata := decoded["metadata"].(map[string]any)
	assert.Equal(t, float64(180), metadata["totalSlotsAnalyzed"])
	assert.Equal(t, 84.5, metadata["averageQuality"])
	assert.Equal(t, 97.2, metadata["fairnessScore"])
	assert.Equal(t, float64(12), metadata["processingTime"])
	assert.Equal(t, "constrained-greedy-v2.0", metadata["algorithm"])
	// Empty warning lists stay off the wire.
	assert.NotContains(t, metadata, "warnings")
	assert.NotContains(t, metadata, "specialHandling")
}

func TestFromBatchResult_OmitsAbsentAlternativeAction(t *testing.T) {
	result := sampleResult()
	result.Results[0].AlternativeAction = nil

	raw, err := json.Marshal(FromBatchResult(result))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	contact := decoded["results"].([]any)[0].(map[string]any)
	assert.NotContains(t, contact, "alternativeAction")
}

func TestFromError_SchedulingError(t *testing.T) {
	resp := FromError(domain.NewNoAvailabilityError())

	assert.False(t, resp.Success)
	assert.Equal(t, "NO_AVAILABILITY", resp.Error)
	assert.NotEmpty(t, resp.Message)
	assert.NotEmpty(t, resp.Suggestion)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "NO_AVAILABILITY", decoded["error"])
}

func TestFromError_UnknownError(t *testing.T) {
	resp := FromError(errors.New("boom"))

	assert.False(t, resp.Success)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error)
	assert.Equal(t, "boom", resp.Message)
	assert.Empty(t, resp.Suggestion)
}
