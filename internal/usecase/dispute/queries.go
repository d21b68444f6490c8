package dispute

import (
	"context"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	domain "github.com/taskhub/labor-marketplace/internal/domain/dispute"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// ======================================================
// STATS
// ======================================================

type Stats struct {
	Open        int64 `json:"open"`
	UnderReview int64 `json:"under_review"`
	Resolved    int64 `json:"resolved"`
	Total       int64 `json:"total"`
}

// GetDisputeStats counts on every call; nothing is cached.
type GetDisputeStats struct {
	disputes domain.Repository
}

func NewGetDisputeStats(disputes domain.Repository) *GetDisputeStats {
	return &GetDisputeStats{disputes: disputes}
}

func (uc *GetDisputeStats) Execute(ctx context.Context, actor user.Actor) (*Stats, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminOnly
	}

	var (
		s   Stats
		err error
	)
	counts := []struct {
		status domain.Status
		into   *int64
	}{
		{domain.StatusOpen, &s.Open},
		{domain.StatusUnderReview, &s.UnderReview},
		{domain.StatusResolved, &s.Resolved},
	}
	for _, c := range counts {
		if *c.into, err = uc.disputes.CountByStatus(ctx, c.status); err != nil {
			return nil, err
		}
	}
	if s.Total, err = uc.disputes.Count(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

// ======================================================
// LISTINGS
// ======================================================

type ListDisputes struct {
	disputes domain.Repository
}

func NewListDisputes(disputes domain.Repository) *ListDisputes {
	return &ListDisputes{disputes: disputes}
}

// Execute lists every dispute, or only those in status when it is set.
func (uc *ListDisputes) Execute(
	ctx context.Context,
	actor user.Actor,
	status *domain.Status,
) ([]models.Dispute, error) {

	if !actor.IsAdmin() {
		return nil, domain.ErrAdminOnly
	}
	if status != nil && !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return uc.disputes.List(ctx, status)
}

type ListUserDisputes struct {
	disputes domain.Repository
}

func NewListUserDisputes(disputes domain.Repository) *ListUserDisputes {
	return &ListUserDisputes{disputes: disputes}
}

func (uc *ListUserDisputes) Execute(ctx context.Context, actor user.Actor) ([]models.Dispute, error) {
	return uc.disputes.ListByUser(ctx, actor.ID)
}

type OpenDisputeCount struct {
	disputes domain.Repository
}

func NewOpenDisputeCount(disputes domain.Repository) *OpenDisputeCount {
	return &OpenDisputeCount{disputes: disputes}
}

func (uc *OpenDisputeCount) Execute(ctx context.Context, actor user.Actor) (int64, error) {
	if !actor.IsAdmin() {
		return 0, domain.ErrAdminOnly
	}
	return uc.disputes.CountByStatus(ctx, domain.StatusOpen)
}

// ======================================================
// DETAILS
// ======================================================

type GetDisputeDetails struct {
	disputes domain.Repository
}

func NewGetDisputeDetails(disputes domain.Repository) *GetDisputeDetails {
	return &GetDisputeDetails{disputes: disputes}
}

func (uc *GetDisputeDetails) Execute(
	ctx context.Context,
	actor user.Actor,
	disputeID uint,
) (*models.Dispute, error) {

	d, err := uc.disputes.GetByIDWithParties(ctx, disputeID)
	if err != nil {
		return nil, mapErr(err)
	}

	if actor.IsAdmin() || d.RaisedBy == actor.ID {
		return d, nil
	}
	if d.Booking != nil && booking.IsParticipant(d.Booking, actor.ID) {
		return d, nil
	}
	return nil, domain.ErrNotAllowed
}
