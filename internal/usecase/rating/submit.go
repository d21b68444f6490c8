package rating

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	domain "github.com/taskhub/labor-marketplace/internal/domain/rating"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/httperr"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

type SubmitRatingInput struct {
	RateeID   string
	BookingID uint
	Score     int
}

type SubmitOrUpdateRating struct {
	ratings  domain.Repository
	bookings booking.Repository
	users    user.Repository
	cache    domain.SummaryCache
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
	now      timezone.Clock
}

func NewSubmitOrUpdateRating(
	ratings domain.Repository,
	bookings booking.Repository,
	users user.Repository,
	cache domain.SummaryCache,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *SubmitOrUpdateRating {
	return &SubmitOrUpdateRating{
		ratings:  ratings,
		bookings: bookings,
		users:    users,
		cache:    cache,
		audit:    audit,
		log:      log,
		now:      timezone.Now,
	}
}

func (uc *SubmitOrUpdateRating) WithClock(clock timezone.Clock) *SubmitOrUpdateRating {
	uc.now = clock
	return uc
}

func (uc *SubmitOrUpdateRating) Execute(
	ctx context.Context,
	actor user.Actor,
	in SubmitRatingInput,
) (*models.Rating, error) {

	// --------------------------------------------------
	// Guards
	// --------------------------------------------------
	if err := domain.ValidateScore(in.Score); err != nil {
		return nil, err
	}
	if actor.ID == in.RateeID {
		return nil, domain.ErrSelfRating
	}

	b, err := uc.bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, domain.ErrBookingUnavailable
		}
		return nil, err
	}
	if !booking.IsParticipant(b, actor.ID) || !booking.IsParticipant(b, in.RateeID) {
		return nil, domain.ErrNotParticipants
	}
	if booking.Status(b.Status) != booking.StatusCompleted {
		return nil, domain.ErrNotRateable
	}

	if _, err := uc.users.GetByID(ctx, in.RateeID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, domain.ErrRateeNotFound
		}
		return nil, err
	}

	// --------------------------------------------------
	// Upsert and recompute in one transaction. A concurrent
	// first submission for the same triple loses the insert
	// race on the unique index; retrying turns it into an update.
	// --------------------------------------------------
	var (
		saved   *models.Rating
		average float64
	)
	for attempt := 0; attempt < 2; attempt++ {
		saved, average, err = uc.upsert(ctx, actor.ID, in)
		if err == nil || !httperr.IsUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.RateeID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "rating_submitted",
		Entity:   "rating",
		EntityID: &saved.ID,
		Metadata: map[string]any{
			"ratee_id":   in.RateeID,
			"booking_id": in.BookingID,
			"score":      in.Score,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"rating_id": saved.ID,
		"ratee_id":  in.RateeID,
		"average":   average,
		"user_id":   actor.ID,
	}).Info("rating saved")

	return saved, nil
}

func (uc *SubmitOrUpdateRating) upsert(
	ctx context.Context,
	raterID string,
	in SubmitRatingInput,
) (*models.Rating, float64, error) {

	var (
		saved   *models.Rating
		average float64
	)

	err := uc.ratings.WithinTx(ctx, func(tx domain.Repository, profiles user.Repository) error {
		existing, err := tx.FindByTriple(ctx, raterID, in.RateeID, in.BookingID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		r, insert := domain.Apply(existing, raterID, in.RateeID, in.BookingID, in.Score, uc.now())
		if insert {
			err = tx.Create(ctx, r)
		} else {
			err = tx.Update(ctx, r)
		}
		if err != nil {
			return err
		}

		all, err := tx.FindAllForRatee(ctx, in.RateeID)
		if err != nil {
			return err
		}
		average = domain.Average(all, in.Score)

		if err := profiles.UpdateAverageRating(ctx, in.RateeID, average); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return domain.ErrRateeNotFound
			}
			return err
		}

		saved = r
		return nil
	})

	return saved, average, err
}
