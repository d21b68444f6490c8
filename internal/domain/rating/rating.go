package rating

import (
	"errors"
	"math"
	"time"

	"github.com/taskhub/labor-marketplace/internal/httperr"
	"github.com/taskhub/labor-marketplace/internal/models"
)

const (
	MinScore = 1
	MaxScore = 5
)

var ErrNotFound = errors.New("rating: not found")

var (
	ErrInvalidScore       = httperr.ErrValidation("invalid_score", "Score must be between 1 and 5")
	ErrSelfRating         = httperr.ErrBusiness("self_rating", "You cannot rate yourself")
	ErrNotRateable        = httperr.ErrBusiness("booking_not_rateable", "Only completed bookings can be rated")
	ErrNotParticipants    = httperr.ErrForbidden("not_participants", "Ratings can only be exchanged between the booking's worker and poster")
	ErrRateeNotFound      = httperr.ErrNotFound("ratee_not_found", "Rated user not found")
	ErrUserNotFound       = httperr.ErrNotFound("user_not_found", "User not found")
	ErrBookingUnavailable = httperr.ErrNotFound("booking_not_found", "Booking not found")
)

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrInvalidScore
	}
	return nil
}

// Apply overwrites an existing rating or builds a new one for the triple.
// It reports whether a new row must be inserted.
func Apply(existing *models.Rating, raterID, rateeID string, bookingID uint, score int, now time.Time) (*models.Rating, bool) {
	if existing != nil {
		existing.Score = score
		existing.UpdatedAt = &now
		return existing, false
	}
	return &models.Rating{
		RaterID:   raterID,
		RateeID:   rateeID,
		BookingID: bookingID,
		Score:     score,
		CreatedAt: now,
	}, true
}

// Average is the arithmetic mean of every score, rounded to two decimals.
// With no ratings it falls back to the given score.
func Average(ratings []models.Rating, fallback int) float64 {
	if len(ratings) == 0 {
		return float64(fallback)
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	return Round2(float64(sum) / float64(len(ratings)))
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary is the read model for a user's reputation.
type Summary struct {
	UserID  string  `json:"user_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
