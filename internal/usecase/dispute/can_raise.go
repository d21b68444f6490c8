package dispute

import (
	"context"
	"errors"
	"time"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	domain "github.com/taskhub/labor-marketplace/internal/domain/dispute"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/httperr"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

// Eligibility answers whether the caller may raise a dispute right now.
// Code and Reason name the first failed condition.
type Eligibility struct {
	BookingID uint   `json:"booking_id"`
	Eligible  bool   `json:"eligible"`
	Code      string `json:"code,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type CanRaiseDispute struct {
	disputes domain.Repository
	bookings booking.Repository
	now      timezone.Clock
	window   time.Duration
}

func NewCanRaiseDispute(
	disputes domain.Repository,
	bookings booking.Repository,
	window time.Duration,
) *CanRaiseDispute {
	if window <= 0 {
		window = domain.DefaultWindow
	}
	return &CanRaiseDispute{
		disputes: disputes,
		bookings: bookings,
		now:      timezone.Now,
		window:   window,
	}
}

func (uc *CanRaiseDispute) WithClock(clock timezone.Clock) *CanRaiseDispute {
	uc.now = clock
	return uc
}

func (uc *CanRaiseDispute) Execute(
	ctx context.Context,
	actor user.Actor,
	bookingID uint,
) (*Eligibility, error) {

	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil && !errors.Is(err, booking.ErrNotFound) {
		return nil, err
	}

	exists := false
	if b != nil {
		if exists, err = uc.disputes.ExistsForBooking(ctx, b.ID); err != nil {
			return nil, err
		}
	}

	out := &Eligibility{BookingID: bookingID, Eligible: true}
	if err := domain.CheckEligibility(b, actor.ID, exists, uc.now(), uc.window); err != nil {
		be, ok := httperr.As(err)
		if !ok {
			return nil, err
		}
		out.Eligible = false
		out.Code = be.Code
		out.Reason = be.Error()
	}
	return out, nil
}
