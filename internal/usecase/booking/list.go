package booking

import (
	"context"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

const (
	ListAsWorker = "worker"
	ListAsPoster = "poster"
)

type ListBookingsInput struct {
	// As is ListAsWorker, ListAsPoster or empty for both sides.
	As               string
	IncludeCancelled bool
}

type ListBookings struct {
	bookings domain.Repository
}

func NewListBookings(bookings domain.Repository) *ListBookings {
	return &ListBookings{bookings: bookings}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	actor user.Actor,
	in ListBookingsInput,
) ([]models.Booking, error) {

	var out []models.Booking

	if in.As == "" || in.As == ListAsWorker {
		asWorker, err := uc.bookings.ListByWorker(ctx, actor.ID, in.IncludeCancelled)
		if err != nil {
			return nil, err
		}
		out = append(out, asWorker...)
	}

	if in.As == "" || in.As == ListAsPoster {
		asPoster, err := uc.bookings.ListByPoster(ctx, actor.ID, in.IncludeCancelled)
		if err != nil {
			return nil, err
		}
		out = append(out, asPoster...)
	}

	return out, nil
}
