package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordialhq/cordial/internal/scheduling/domain"
)

func TestTriageAvailability(t *testing.T) {
	t.Run("no candidates", func(t *testing.T) {
		_, _, err := TriageAvailability(0, 3, 3)
		var schedErr *domain.SchedulingError
		require.ErrorAs(t, err, &schedErr)
		assert.Equal(t, domain.CodeNoAvailability, schedErr.Code)
	})

	t.Run("fewer candidates than contacts", func(t *testing.T) {
		_, _, err := TriageAvailability(2, 3, 3)
		var schedErr *domain.SchedulingError
		require.ErrorAs(t, err, &schedErr)
		assert.Equal(t, domain.CodeSevereShortage, schedErr.Code)
	})

	t.Run("pool forces a reduced quota", func(t *testing.T) {
		adjusted, warning, err := TriageAvailability(7, 3, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, adjusted)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarnReducedSlots, warning.Code)
		assert.Equal(t, 2, warning.AdjustedSlotsPerContact)
	})

	t.Run("ample pool passes through", func(t *testing.T) {
		adjusted, warning, err := TriageAvailability(30, 3, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, adjusted)
		assert.Nil(t, warning)
	})
}

func TestDetectMeetingOverload(t *testing.T) {
	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	hourly := func(hours ...int) []domain.BusyInterval {
		out := make([]domain.BusyInterval, 0, len(hours))
		for _, h := range hours {
			out = append(out, domain.BusyInterval{
				Start: day.Add(time.Duration(h) * time.Hour),
				End:   day.Add(time.Duration(h+1) * time.Hour),
			})
		}
		return out
	}

	t.Run("busy plus chosen exceeds threshold", func(t *testing.T) {
		chosen := []domain.Slot{
			domain.NewSlot(day.Add(14*time.Hour), time.Hour),
			domain.NewSlot(day.Add(16*time.Hour), time.Hour),
		}
		warning := DetectMeetingOverload(hourly(8, 9, 10), chosen, time.UTC, 4)
		require.NotNil(t, warning)
		assert.Equal(t, domain.WarnMeetingOverload, warning.Code)
		require.Len(t, warning.OverloadDays, 1)
		assert.Equal(t, domain.DayLoad{Day: "2026-03-03", Count: 5}, warning.OverloadDays[0])
	})

	t.Run("at the threshold stays quiet", func(t *testing.T) {
		warning := DetectMeetingOverload(hourly(8, 9, 10, 11), nil, time.UTC, 4)
		assert.Nil(t, warning)
	})

	t.Run("grouping zone shifts the day bucket", func(t *testing.T) {
		la, err := time.LoadLocation("America/Los_Angeles")
		require.NoError(t, err)
		// 02:00-06:00 UTC on March 4 is still March 3 in Los Angeles.
		next := day.Add(24 * time.Hour)
		busy := append(hourly(20, 21, 22), domain.BusyInterval{
			Start: next.Add(2 * time.Hour),
			End:   next.Add(3 * time.Hour),
		}, domain.BusyInterval{
			Start: next.Add(4 * time.Hour),
			End:   next.Add(5 * time.Hour),
		})
		warning := DetectMeetingOverload(busy, nil, la, 4)
		require.NotNil(t, warning)
		assert.Equal(t, "2026-03-03", warning.OverloadDays[0].Day)
	})
}

func TestExtremeTimezoneHandler_RelaxesWhenNothingEligible(t *testing.T) {
	config := domain.DefaultSchedulingConfig()
	gen := NewSlotGenerator(config)
	scorer := NewQualityScorer(config, nil, time.UTC)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	kiritimati, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)

	tuesday := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	dateRange := testRange(t, tuesday, 1)

	slots := gen.Generate(nil, dateRange, time.UTC,
		config.WorkingHoursStart, config.WorkingHoursEnd)
	require.NotEmpty(t, slots)

	contacts := []domain.Contact{{ID: "c1", Name: "Kai", Timezone: "Pacific/Kiritimati"}}
	bounds := map[string]*contactBounds{
		"c1": {zone: kiritimati, hoursStart: config.WorkingHoursStart, hoursEnd: config.WorkingHoursEnd},
	}
	matrix := BuildQualityMatrix(slots, contacts, bounds, scorer)

	// UTC+14 puts every default-hours slot outside the contact's day.
	eligible, _ := eligibleStats(matrix, "c1")
	require.Zero(t, eligible)

	handler := NewExtremeTimezoneHandler(config, gen, scorer, ny)
	handling := handler.Review(matrix, contacts, bounds, nil, dateRange)

	require.Len(t, handling, 1)
	assert.Equal(t, domain.HandlingRelaxConstraints, handling[0].Code)
	assert.Equal(t, "c1", handling[0].ContactID)
	assert.Equal(t, domain.RelaxedHoursStart, handling[0].RelaxedStart)
	assert.Equal(t, domain.RelaxedHoursEnd, handling[0].RelaxedEnd)

	// Bounds widen and the regeneration pass runs on the contact's own
	// clock: 00:00 UTC is 14:00 Tuesday on Kiritimati, 17:30 UTC is
	// 07:30 Wednesday.
	assert.Equal(t, domain.RelaxedHoursStart, bounds["c1"].hoursStart)
	assert.True(t, matrix.HasSlot("2026-03-03T00:00:00Z"))
	assert.True(t, matrix.HasSlot("2026-03-03T17:30:00Z"))

	// Pre-existing rows are re-scored under the widened bounds: 17:00 UTC
	// (07:00 Wednesday local) was a zero cell and is now admissible.
	assert.Positive(t, matrix.Score("2026-03-03T17:00:00Z", "c1"))

	eligible, _ = eligibleStats(matrix, "c1")
	assert.Positive(t, eligible)
}

func TestExtremeTimezoneHandler_FlagsCompromise(t *testing.T) {
	config := domain.DefaultSchedulingConfig()
	gen := NewSlotGenerator(config)
	scorer := NewQualityScorer(config, nil, time.UTC)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	kiritimati, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)

	tuesday := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	dateRange := testRange(t, tuesday, 1)

	contacts := []domain.Contact{{ID: "c1", Timezone: "Pacific/Kiritimati"}}
	bounds := map[string]*contactBounds{
		"c1": {zone: kiritimati, hoursStart: config.WorkingHoursStart, hoursEnd: config.WorkingHoursEnd},
	}

	// Eligible but weak options: average below the compromise floor.
	matrix := domain.NewQualityMatrix(
		[]string{"2026-03-03T18:00:00Z", "2026-03-03T18:30:00Z"}, []string{"c1"})
	matrix.Set("2026-03-03T18:00:00Z", "c1", domain.QualityScore{Score: 45})
	matrix.Set("2026-03-03T18:30:00Z", "c1", domain.QualityScore{Score: 40})

	handler := NewExtremeTimezoneHandler(config, gen, scorer, ny)
	handling := handler.Review(matrix, contacts, bounds, nil, dateRange)

	require.Len(t, handling, 1)
	assert.Equal(t, domain.HandlingCompromise, handling[0].Code)
	// Bounds stay untouched on the compromise path.
	assert.Equal(t, config.WorkingHoursStart, bounds["c1"].hoursStart)
}

func TestExtremeTimezoneHandler_IgnoresModerateGap(t *testing.T) {
	config := domain.DefaultSchedulingConfig()
	gen := NewSlotGenerator(config)
	scorer := NewQualityScorer(config, nil, time.UTC)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tuesday := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	dateRange := testRange(t, tuesday, 1)

	contacts := []domain.Contact{{ID: "c1", Timezone: "Europe/Berlin"}}
	bounds := map[string]*contactBounds{
		"c1": {zone: berlin, hoursStart: config.WorkingHoursStart, hoursEnd: config.WorkingHoursEnd},
	}
	matrix := domain.NewQualityMatrix([]string{"2026-03-03T10:00:00Z"}, []string{"c1"})
	matrix.Set("2026-03-03T10:00:00Z", "c1", domain.QualityScore{Score: 20})

	handler := NewExtremeTimezoneHandler(config, gen, scorer, ny)
	handling := handler.Review(matrix, contacts, bounds, nil, dateRange)

	assert.Empty(t, handling)
}
