package booking

import (
	"time"

	"github.com/taskhub/labor-marketplace/internal/models"
)

// Interval is a half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses the strict half-open test, so ranges that only touch at an
// endpoint do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// IntervalOf returns the booking's range; ok is false when either bound is unset.
func IntervalOf(b *models.Booking) (Interval, bool) {
	if b == nil || b.StartTime == nil || b.EndTime == nil {
		return Interval{}, false
	}
	return Interval{Start: *b.StartTime, End: *b.EndTime}, true
}

// ValidateSchedule checks Start < End when both bounds are present.
func ValidateSchedule(start, end *time.Time) error {
	if start != nil && end != nil && !start.Before(*end) {
		return ErrInvalidInterval
	}
	return nil
}

// Blocks reports whether an existing booking takes the worker's time.
// Cancelled and removed bookings never do.
func Blocks(existing *models.Booking) bool {
	return existing.DeletedAt == nil && Status(existing.Status) != StatusCancelled
}

// Conflicts filters existing bookings down to those that block the
// candidate range, skipping excludeID.
func Conflicts(existing []models.Booking, candidate Interval, excludeID *uint) []models.Booking {
	var out []models.Booking
	for i := range existing {
		b := &existing[i]
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if !Blocks(b) {
			continue
		}
		iv, ok := IntervalOf(b)
		if !ok {
			continue
		}
		if iv.Overlaps(candidate) {
			out = append(out, *b)
		}
	}
	return out
}
