package dispute

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/models"
)

const (
	DefaultWindow = 48 * time.Hour

	MinReasonLength = 20
	MaxReasonLength = 2000

	MinResolutionLength = 10
)

// CheckEligibility is the single rule set behind both the eligibility check
// and raising a dispute. A booking without an end time has no window.
func CheckEligibility(
	b *models.Booking,
	userID string,
	alreadyDisputed bool,
	now time.Time,
	window time.Duration,
) error {
	if b == nil {
		return booking.ErrBookingNotFound
	}
	if booking.Status(b.Status) != booking.StatusCompleted {
		return ErrBookingNotCompleted
	}
	if !booking.IsWorker(b, userID) {
		return ErrNotBookingWorker
	}
	if b.EndTime != nil && now.Sub(*b.EndTime) > window {
		return ErrWindowExpired(window)
	}
	if alreadyDisputed {
		return ErrAlreadyExists
	}
	return nil
}

func ValidateReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	n := utf8.RuneCountInString(reason)
	if n < MinReasonLength || n > MaxReasonLength {
		return "", ErrInvalidReason
	}
	return reason, nil
}

func ValidateResolution(text string) (string, error) {
	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)
	if n < MinResolutionLength || n > MaxReasonLength {
		return "", ErrInvalidResolution
	}
	return text, nil
}
