package booking

import (
	"time"

	"github.com/taskhub/labor-marketplace/internal/models"
)

// ===============================
// Participants
// ===============================

func IsWorker(b *models.Booking, userID string) bool {
	return userID != "" && b.WorkerID == userID
}

func IsPoster(b *models.Booking, userID string) bool {
	return userID != "" && b.PosterID == userID
}

func IsParticipant(b *models.Booking, userID string) bool {
	return IsWorker(b, userID) || IsPoster(b, userID)
}

// ===============================
// Domain Actions
// ===============================

type NewBooking struct {
	TaskID     uint
	WorkerID   string
	PosterID   string
	AgreedRate float64
	StartTime  *time.Time
	EndTime    *time.Time
}

func New(in NewBooking, now time.Time) (*models.Booking, error) {
	if err := ValidateSchedule(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	if in.AgreedRate < 0 {
		return nil, ErrInvalidRate
	}
	if in.WorkerID == in.PosterID {
		return nil, ErrSelfBooking
	}

	return &models.Booking{
		TaskID:     in.TaskID,
		WorkerID:   in.WorkerID,
		PosterID:   in.PosterID,
		AgreedRate: in.AgreedRate,
		StartTime:  utcPtr(in.StartTime),
		EndTime:    utcPtr(in.EndTime),
		Status:     string(InitialStatus()),
		Version:    1,
		CreatedAt:  now,
	}, nil
}

func Reschedule(b *models.Booking, start, end *time.Time, rate float64) error {
	if err := CanReschedule(Status(b.Status)); err != nil {
		return err
	}
	if err := ValidateSchedule(start, end); err != nil {
		return err
	}
	if rate < 0 {
		return ErrInvalidRate
	}

	b.StartTime = utcPtr(start)
	b.EndTime = utcPtr(end)
	b.AgreedRate = rate
	return nil
}

// ChangeStatus applies an explicitly requested status. The Disputed edges
// belong to the dispute workflow and are refused here.
func ChangeStatus(b *models.Booking, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	from := Status(b.Status)
	if from == to {
		return nil
	}
	if from == StatusDisputed || to == StatusDisputed || !CanTransition(from, to) {
		return ErrStatusChangeRejected
	}
	b.Status = string(to)
	return nil
}

func Cancel(b *models.Booking) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCancelled)
	return nil
}

func Start(b *models.Booking, callerID string) error {
	if IsPoster(b, callerID) {
		return ErrPosterCannotStart
	}
	if !IsWorker(b, callerID) {
		return ErrNotWorker
	}
	if err := CanStart(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusInProgress)
	return nil
}

func CompleteByWorker(b *models.Booking, callerID string) error {
	if !IsWorker(b, callerID) {
		return ErrNotWorker
	}
	if err := CanCompleteByWorker(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCompletedFromWorker)
	return nil
}

func CompleteByPoster(b *models.Booking, callerID string) error {
	if !IsPoster(b, callerID) {
		return ErrNotPoster
	}
	if err := CanCompleteByPoster(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCompleted)
	return nil
}

// MarkDisputed is the side effect of raising a dispute.
func MarkDisputed(b *models.Booking) error {
	if Status(b.Status) != StatusCompleted {
		return ErrStatusChangeRejected
	}
	b.Status = string(StatusDisputed)
	return nil
}

// RestoreCompleted is the side effect of resolving a dispute.
func RestoreCompleted(b *models.Booking) error {
	if Status(b.Status) != StatusDisputed {
		return ErrStatusChangeRejected
	}
	b.Status = string(StatusCompleted)
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
