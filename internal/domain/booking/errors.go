package booking

import (
	"errors"

	"github.com/taskhub/labor-marketplace/internal/httperr"
)

// Repository sentinels.
var (
	ErrNotFound        = errors.New("booking: not found")
	ErrVersionConflict = errors.New("booking: version conflict")
)

// Failures returned to callers.
var (
	ErrBookingNotFound      = httperr.ErrNotFound("booking_not_found", "Booking not found")
	ErrWorkerNotFound       = httperr.ErrNotFound("worker_not_found", "Worker not found")
	ErrTaskNotFound         = httperr.ErrNotFound("task_not_found", "Task not found")
	ErrWorkerUnavailable    = httperr.ErrBusiness("worker_unavailable", "Worker is not available during the requested time")
	ErrInvalidInterval      = httperr.ErrValidation("invalid_interval", "Start time must be before end time")
	ErrInvalidRate          = httperr.ErrValidation("invalid_rate", "Agreed rate cannot be negative")
	ErrInvalidStatus        = httperr.ErrValidation("invalid_status", "Unknown booking status")
	ErrNotAWorker           = httperr.ErrBusiness("not_a_worker", "The selected user cannot be booked as a worker")
	ErrSelfBooking          = httperr.ErrBusiness("self_booking", "A poster cannot book themselves on their own task")
	ErrCannotCancel         = httperr.ErrBusiness("cannot_cancel", "Cannot cancel a completed or already cancelled booking")
	ErrCannotCancelDisputed = httperr.ErrBusiness("cannot_cancel_disputed", "Cannot cancel a disputed booking")
	ErrCannotStart          = httperr.ErrBusiness("cannot_start", "Only scheduled bookings can be started")
	ErrPosterCannotStart    = httperr.ErrForbidden("poster_cannot_start", "Poster cannot start the work")
	ErrNotInProgress        = httperr.ErrBusiness("not_in_progress", "Only bookings in progress can be marked as completed")
	ErrCannotConfirm        = httperr.ErrBusiness("cannot_confirm", "Booking cannot be confirmed as completed in its current state")
	ErrCannotReschedule     = httperr.ErrBusiness("cannot_reschedule", "Booking can no longer be rescheduled")
	ErrStatusChangeRejected = httperr.ErrBusiness("invalid_transition", "Requested status change is not allowed")
	ErrNotWorker            = httperr.ErrForbidden("not_booking_worker", "Only the booked worker can perform this action")
	ErrNotPoster            = httperr.ErrForbidden("not_booking_poster", "Only the poster can perform this action")
	ErrNotParticipant       = httperr.ErrForbidden("not_participant", "You are not a participant of this booking")
	ErrCannotRemoveDisputed = httperr.ErrBusiness("cannot_remove_disputed", "A disputed booking cannot be removed")
	ErrStaleBooking         = httperr.ErrConflict("booking_version_conflict", "Booking was modified by another request, reload and try again")
)
