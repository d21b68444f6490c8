package dispute

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/labor-marketplace/internal/httperr"
)

var (
	ErrNotFound = errors.New("dispute: not found")

	// ErrClosed is returned by Repository.Update when the stored row is
	// already resolved.
	ErrClosed = errors.New("dispute: already resolved")
)

var (
	ErrDisputeNotFound       = httperr.ErrNotFound("dispute_not_found", "Dispute not found.")
	ErrBookingNotCompleted   = httperr.ErrBusiness("booking_not_completed", "Disputes can only be raised for completed bookings.")
	ErrNotBookingWorker      = httperr.ErrForbidden("not_booking_worker", "Only the booked worker can raise a dispute.")
	ErrAlreadyExists         = httperr.ErrBusiness("dispute_exists", "A dispute already exists for this booking.")
	ErrAlreadyResolved       = httperr.ErrBusiness("dispute_resolved", "Dispute is already resolved.")
	ErrCannotUpdateResolved  = httperr.ErrBusiness("dispute_resolved", "Cannot update a resolved dispute.")
	ErrResolveRequired       = httperr.ErrBusiness("use_resolve", "Disputes are closed through resolution.")
	ErrInvalidStatus         = httperr.ErrValidation("invalid_dispute_status", "Unknown dispute status.")
	ErrInvalidResolutionType = httperr.ErrValidation("invalid_resolution_type", "Unknown resolution type.")
	ErrInvalidPercentage     = httperr.ErrValidation("invalid_worker_percentage", "Worker percentage must be between 0 and 100 for custom splits.")
	ErrInvalidReason         = httperr.ErrValidation("invalid_reason", fmt.Sprintf("Reason must be between %d and %d characters.", MinReasonLength, MaxReasonLength))
	ErrInvalidResolution     = httperr.ErrValidation("invalid_resolution", fmt.Sprintf("Resolution notes must be between %d and %d characters.", MinResolutionLength, MaxReasonLength))
	ErrAdminOnly             = httperr.ErrForbidden("admin_only", "Only administrators can manage disputes.")
	ErrNotAllowed            = httperr.ErrForbidden("dispute_forbidden", "You are not allowed to view this dispute.")
)

// ErrWindowExpired reports a raise attempted after the dispute window.
func ErrWindowExpired(window time.Duration) error {
	return httperr.ErrBusiness(
		"dispute_window_expired",
		fmt.Sprintf("Disputes must be raised within %d hours of booking completion.", int(window.Hours())),
	)
}
