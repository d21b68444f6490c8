package task

import (
	"github.com/taskhub/labor-marketplace/internal/httperr"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// RejectedForOther is stored on the applications that lose to an
// accepted one.
const RejectedForOther = "Another worker was selected for this task."

var (
	ErrApplicationMissing   = httperr.ErrNotFound("application_not_found", "Application not found")
	ErrApplicationProcessed = httperr.ErrBusiness("application_processed", "This application has already been processed.")
	ErrTaskNotOpen          = httperr.ErrBusiness("task_not_open", "This task is no longer available.")
)

// CanAccept checks the states an accept starts from.
func CanAccept(a *models.TaskApplication, t *models.Task) error {
	if ApplicationStatus(a.Status) != ApplicationPending {
		return ErrApplicationProcessed
	}
	if Status(t.Status) != StatusOpen {
		return ErrTaskNotOpen
	}
	return nil
}
