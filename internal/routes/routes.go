package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/config"
	domainBooking "github.com/taskhub/labor-marketplace/internal/domain/booking"
	domainDispute "github.com/taskhub/labor-marketplace/internal/domain/dispute"
	domainRating "github.com/taskhub/labor-marketplace/internal/domain/rating"
	"github.com/taskhub/labor-marketplace/internal/domain/task"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/handlers"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	ucBooking "github.com/taskhub/labor-marketplace/internal/usecase/booking"
	ucDispute "github.com/taskhub/labor-marketplace/internal/usecase/dispute"
	ucRating "github.com/taskhub/labor-marketplace/internal/usecase/rating"
)

// Deps carries the storage-backed collaborators. main picks the backend.
type Deps struct {
	Config *config.Config
	Log    logrus.FieldLogger

	Users    user.Repository
	Tasks    task.Repository
	Apps     task.ApplicationRepository
	Bookings domainBooking.Repository
	Disputes domainDispute.Repository
	Ratings  domainRating.Repository
	Cache    domainRating.SummaryCache

	AuditStore audit.Store
	Audit      *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := d.Log

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	bookingUC := handlers.BookingUseCases{
		Create:           ucBooking.NewCreateBooking(d.Bookings, d.Tasks, d.Users, d.Audit, log),
		Update:           ucBooking.NewUpdateBooking(d.Bookings, d.Audit, log),
		Cancel:           ucBooking.NewCancelBooking(d.Bookings, d.Audit, log),
		Start:            ucBooking.NewStartWork(d.Bookings, d.Audit, log),
		CompleteByWorker: ucBooking.NewCompleteByWorker(d.Bookings, d.Audit, log),
		CompleteByPoster: ucBooking.NewCompleteByPoster(d.Bookings, d.Audit, log),
		Remove:           ucBooking.NewRemoveBooking(d.Bookings, d.Audit, log),
		Get:              ucBooking.NewGetBooking(d.Bookings),
		List:             ucBooking.NewListBookings(d.Bookings),
		Availability:     ucBooking.NewCheckAvailability(d.Bookings, d.Users),
		Accept:           ucBooking.NewAcceptApplication(d.Apps, d.Tasks, d.Users, d.Audit, log),
	}

	// ======================================================
	// USE CASES: DISPUTES
	// ======================================================
	raiseDisputeUC := ucDispute.NewRaiseDispute(d.Disputes, d.Audit, log, cfg.DisputeWindow)
	canRaiseUC := ucDispute.NewCanRaiseDispute(d.Disputes, d.Bookings, cfg.DisputeWindow)

	adminDisputeUC := handlers.AdminDisputeUseCases{
		List:         ucDispute.NewListDisputes(d.Disputes),
		Stats:        ucDispute.NewGetDisputeStats(d.Disputes),
		OpenCount:    ucDispute.NewOpenDisputeCount(d.Disputes),
		UpdateStatus: ucDispute.NewUpdateDisputeStatus(d.Disputes, d.Audit, log),
		Resolve:      ucDispute.NewResolveDispute(d.Disputes, d.Audit, log),
	}

	// ======================================================
	// USE CASES: RATINGS
	// ======================================================
	submitRatingUC := ucRating.NewSubmitOrUpdateRating(d.Ratings, d.Bookings, d.Users, d.Cache, d.Audit, log)
	getRatingUC := ucRating.NewGetUserRating(d.Ratings, d.Users, d.Cache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Users, cfg, log)
	meHandler := handlers.NewMeHandler(d.Users, log)
	bookingHandler := handlers.NewBookingHandler(bookingUC, log)
	disputeHandler := handlers.NewDisputeHandler(
		raiseDisputeUC,
		canRaiseUC,
		ucDispute.NewListUserDisputes(d.Disputes),
		ucDispute.NewGetDisputeDetails(d.Disputes),
		log,
	)
	adminDisputeHandler := handlers.NewAdminDisputeHandler(adminDisputeUC, log)
	ratingHandler := handlers.NewRatingHandler(submitRatingUC, getRatingUC, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore, log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login",
			middleware.RateLimit(cfg.RateLimitLimit, cfg.RateLimitPeriod),
			authHandler.Login,
		)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PATCH("/bookings/:id", bookingHandler.Update)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/bookings/:id/start", bookingHandler.Start)
			secured.PATCH("/bookings/:id/complete-worker", bookingHandler.CompleteByWorker)
			secured.PATCH("/bookings/:id/complete", bookingHandler.CompleteByPoster)
			secured.DELETE("/bookings/:id", bookingHandler.Remove)
			secured.GET("/bookings/:id/dispute-eligibility", disputeHandler.Eligibility)

			secured.GET("/workers/:id/availability", bookingHandler.Availability)
			secured.POST("/applications/:id/accept", bookingHandler.AcceptApplication)

			// ------------------------------
			// DISPUTES
			// ------------------------------
			secured.POST("/disputes", disputeHandler.Raise)
			secured.GET("/disputes", disputeHandler.ListMine)
			secured.GET("/disputes/:id", disputeHandler.Get)

			// ------------------------------
			// RATINGS
			// ------------------------------
			secured.PUT("/ratings", ratingHandler.Submit)
			secured.GET("/users/:id/rating", ratingHandler.GetUserRating)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(user.RoleAdmin))
		{
			admin.GET("/disputes", adminDisputeHandler.List)
			admin.GET("/disputes/stats", adminDisputeHandler.Stats)
			admin.GET("/disputes/open-count", adminDisputeHandler.OpenCount)
			admin.PATCH("/disputes/:id/status", adminDisputeHandler.UpdateStatus)
			admin.POST("/disputes/:id/resolve", adminDisputeHandler.Resolve)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
