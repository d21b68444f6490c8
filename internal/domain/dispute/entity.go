package dispute

import (
	"time"

	"github.com/taskhub/labor-marketplace/internal/models"
)

func New(bookingID uint, raisedBy, reason string, now time.Time) *models.Dispute {
	return &models.Dispute{
		BookingID: bookingID,
		RaisedBy:  raisedBy,
		Reason:    reason,
		Status:    string(StatusOpen),
		CreatedAt: now,
	}
}

// ChangeStatus moves a dispute between the non-terminal statuses.
func ChangeStatus(d *models.Dispute, to Status, now time.Time) error {
	if Status(d.Status).Terminal() {
		return ErrCannotUpdateResolved
	}
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if to.Terminal() {
		return ErrResolveRequired
	}
	d.Status = string(to)
	d.UpdatedAt = &now
	return nil
}

type Resolution struct {
	Type             ResolutionType
	Notes            string
	WorkerPercentage *int
	AdminID          string
}

// Resolve closes the dispute. Nothing is touched when validation fails.
func Resolve(d *models.Dispute, in Resolution, now time.Time) error {
	if Status(d.Status).Terminal() {
		return ErrAlreadyResolved
	}
	pct, err := WorkerPercentage(in.Type, in.WorkerPercentage)
	if err != nil {
		return err
	}
	notes, err := ValidateResolution(in.Notes)
	if err != nil {
		return err
	}

	rt := string(in.Type)
	admin := in.AdminID

	d.Status = string(StatusResolved)
	d.Resolution = &notes
	d.ResolutionType = &rt
	d.WorkerPercentage = &pct
	d.ResolvedBy = &admin
	d.ResolvedAt = &now
	d.UpdatedAt = &now
	return nil
}
