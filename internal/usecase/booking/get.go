package booking

import (
	"context"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type GetBooking struct {
	bookings domain.Repository
}

func NewGetBooking(bookings domain.Repository) *GetBooking {
	return &GetBooking{bookings: bookings}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	actor user.Actor,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, loadErr(err)
	}
	if !actor.IsAdmin() && !domain.IsParticipant(b, actor.ID) {
		return nil, domain.ErrNotParticipant
	}
	return b, nil
}
