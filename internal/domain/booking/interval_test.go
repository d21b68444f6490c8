package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskhub/labor-marketplace/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 10, hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestInterval_Overlaps(t *testing.T) {
	existing := Interval{Start: at(9, 0), End: at(12, 0)}

	assert.True(t, existing.Overlaps(Interval{Start: at(11, 0), End: at(13, 0)}))
	assert.True(t, existing.Overlaps(Interval{Start: at(9, 0), End: at(12, 0)}))
	assert.True(t, existing.Overlaps(Interval{Start: at(10, 0), End: at(10, 30)}))
	assert.True(t, existing.Overlaps(Interval{Start: at(8, 0), End: at(9, 1)}))

	// touching endpoints
	assert.False(t, existing.Overlaps(Interval{Start: at(12, 0), End: at(14, 0)}))
	assert.False(t, existing.Overlaps(Interval{Start: at(7, 0), End: at(9, 0)}))
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule(nil, nil))
	assert.NoError(t, ValidateSchedule(ptr(at(9, 0)), nil))
	assert.NoError(t, ValidateSchedule(ptr(at(9, 0)), ptr(at(10, 0))))
	assert.Equal(t, ErrInvalidInterval, ValidateSchedule(ptr(at(10, 0)), ptr(at(10, 0))))
	assert.Equal(t, ErrInvalidInterval, ValidateSchedule(ptr(at(11, 0)), ptr(at(10, 0))))
}

func TestConflicts(t *testing.T) {
	removed := at(0, 0)
	existing := []models.Booking{
		{ID: 1, Status: string(StatusScheduled), StartTime: ptr(at(9, 0)), EndTime: ptr(at(12, 0))},
		{ID: 2, Status: string(StatusCancelled), StartTime: ptr(at(11, 0)), EndTime: ptr(at(13, 0))},
		{ID: 3, Status: string(StatusInProgress), StartTime: ptr(at(12, 0)), EndTime: ptr(at(13, 0))},
		{ID: 4, Status: string(StatusScheduled)},
		{ID: 5, Status: string(StatusScheduled), StartTime: ptr(at(11, 0)), EndTime: ptr(at(12, 30)), DeletedAt: &removed},
	}

	got := Conflicts(existing, Interval{Start: at(11, 0), End: at(12, 30)}, nil)
	if assert.Len(t, got, 2) {
		assert.Equal(t, uint(1), got[0].ID)
		assert.Equal(t, uint(3), got[1].ID)
	}

	self := uint(1)
	got = Conflicts(existing, Interval{Start: at(9, 0), End: at(11, 0)}, &self)
	assert.Empty(t, got)
}
