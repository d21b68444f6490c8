package task

import (
	"context"
	"errors"
	"time"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusAssigned Status = "assigned"
)

// Repository sentinels.
var (
	ErrNotFound = errors.New("task: not found")
	// ErrNotOpen is returned by Assign when the stored task is no longer open.
	ErrNotOpen = errors.New("task: not open")

	ErrApplicationNotFound = errors.New("task: application not found")
	// ErrApplicationAnswered is returned by Respond when the stored
	// application is no longer pending.
	ErrApplicationAnswered = errors.New("task: application already answered")
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.Task, error)

	// Assign moves an open task to assigned. Any other stored status
	// returns ErrNotOpen.
	Assign(ctx context.Context, id uint, at time.Time) error
}

type ApplicationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.TaskApplication, error)

	// Respond persists the status, reason and response time of a, only
	// while the stored row is still pending.
	Respond(ctx context.Context, a *models.TaskApplication) error

	// RejectPending rejects every pending application of the task except
	// keepID and returns how many it touched.
	RejectPending(ctx context.Context, taskID, keepID uint, reason string, at time.Time) (int64, error)

	// WithWorkerLock runs fn in one transaction holding the same worker
	// lock as booking.Repository.WithWorkerLock. Writes through all three
	// repositories commit or roll back together.
	WithWorkerLock(
		ctx context.Context,
		workerID string,
		fn func(tx ApplicationRepository, tasks Repository, bookings booking.Repository) error,
	) error
}
