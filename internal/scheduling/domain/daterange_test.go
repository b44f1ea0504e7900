package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateRange(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	t.Run("valid range", func(t *testing.T) {
		r, err := NewDateRange(start, start.Add(14*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 14*24*time.Hour, r.Span())
	})

	t.Run("reversed range", func(t *testing.T) {
		_, err := NewDateRange(start, start.Add(-time.Hour))
		var schedErr *SchedulingError
		require.ErrorAs(t, err, &schedErr)
		assert.Equal(t, CodeInvalidDateRange, schedErr.Code)
	})

	t.Run("zero-length range", func(t *testing.T) {
		_, err := NewDateRange(start, start)
		assert.Error(t, err)
	})

	t.Run("over thirty days", func(t *testing.T) {
		_, err := NewDateRange(start, start.Add(31*24*time.Hour))
		var schedErr *SchedulingError
		require.ErrorAs(t, err, &schedErr)
		assert.Equal(t, CodeInvalidDateRange, schedErr.Code)
	})

	t.Run("exactly thirty days", func(t *testing.T) {
		_, err := NewDateRange(start, start.Add(MaxRangeSpan))
		assert.NoError(t, err)
	})
}

func TestDateRange_ContainsInterval(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	r, err := NewDateRange(start, start.Add(24*time.Hour))
	require.NoError(t, err)

	assert.True(t, r.ContainsInterval(start, start.Add(time.Hour)))
	assert.True(t, r.ContainsInterval(start.Add(23*time.Hour), start.Add(24*time.Hour)))
	assert.False(t, r.ContainsInterval(start.Add(-time.Minute), start.Add(time.Hour)))
	assert.False(t, r.ContainsInterval(start.Add(23*time.Hour), start.Add(25*time.Hour)))
}
