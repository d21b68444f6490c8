package dispute

import (
	"errors"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	domain "github.com/taskhub/labor-marketplace/internal/domain/dispute"
	"github.com/taskhub/labor-marketplace/internal/httperr"
)

func mapErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrDisputeNotFound
	case errors.Is(err, booking.ErrNotFound):
		return booking.ErrBookingNotFound
	case errors.Is(err, booking.ErrVersionConflict):
		return booking.ErrStaleBooking
	case httperr.IsUniqueViolation(err):
		return domain.ErrAlreadyExists
	}
	return err
}
