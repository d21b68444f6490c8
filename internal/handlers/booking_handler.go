package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/dto"
	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	ucBooking "github.com/taskhub/labor-marketplace/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingUseCases struct {
	Create           *ucBooking.CreateBooking
	Update           *ucBooking.UpdateBooking
	Cancel           *ucBooking.CancelBooking
	Start            *ucBooking.StartWork
	CompleteByWorker *ucBooking.CompleteByWorker
	CompleteByPoster *ucBooking.CompleteByPoster
	Remove           *ucBooking.RemoveBooking
	Get              *ucBooking.GetBooking
	List             *ucBooking.ListBookings
	Availability     *ucBooking.CheckAvailability
	Accept           *ucBooking.AcceptApplication
}

type BookingHandler struct {
	uc  BookingUseCases
	log logrus.FieldLogger
}

func NewBookingHandler(uc BookingUseCases, log logrus.FieldLogger) *BookingHandler {
	return &BookingHandler{uc: uc, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	TaskID     uint       `json:"task_id" binding:"required"`
	WorkerID   string     `json:"worker_id" binding:"required,uuid"`
	AgreedRate float64    `json:"agreed_rate"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
}

type UpdateBookingRequest struct {
	Version    *uint      `json:"version"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	AgreedRate *float64   `json:"agreed_rate"`
	Status     *string    `json:"status"`
}

// ======================================================
// WRITES
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.uc.Create.Execute(c.Request.Context(), middleware.ActorFrom(c), ucBooking.CreateBookingInput{
		TaskID:     req.TaskID,
		WorkerID:   req.WorkerID,
		AgreedRate: req.AgreedRate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	httpresp.Created(c, requestLog(c, h.log), b, err)
}

// AcceptApplication books the applicant of a pending application.
func (h *BookingHandler) AcceptApplication(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	b, err := h.uc.Accept.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	httpresp.Created(c, requestLog(c, h.log), b, err)
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucBooking.UpdateBookingInput{
		BookingID:  id,
		Version:    req.Version,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		AgreedRate: req.AgreedRate,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		in.Status = &s
	}

	b, err := h.uc.Update.Execute(c.Request.Context(), middleware.ActorFrom(c), in)
	httpresp.OK(c, requestLog(c, h.log), b, err)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.uc.Cancel.Execute)
}

func (h *BookingHandler) Start(c *gin.Context) {
	h.transition(c, h.uc.Start.Execute)
}

func (h *BookingHandler) CompleteByWorker(c *gin.Context) {
	h.transition(c, h.uc.CompleteByWorker.Execute)
}

func (h *BookingHandler) CompleteByPoster(c *gin.Context) {
	h.transition(c, h.uc.CompleteByPoster.Execute)
}

func (h *BookingHandler) Remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	err := h.uc.Remove.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	httpresp.OK(c, requestLog(c, h.log), gin.H{"id": id}, err)
}

// ======================================================
// READS
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	b, err := h.uc.Get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	httpresp.OK(c, requestLog(c, h.log), b, err)
}

func (h *BookingHandler) List(c *gin.Context) {
	as := c.Query("as")
	if as != "" && as != ucBooking.ListAsWorker && as != ucBooking.ListAsPoster {
		httpresp.Invalid(c, "invalid_filter", "as must be worker or poster")
		return
	}

	bookings, err := h.uc.List.Execute(c.Request.Context(), middleware.ActorFrom(c), ucBooking.ListBookingsInput{
		As:               as,
		IncludeCancelled: c.Query("include_cancelled") == "true",
	})
	httpresp.List(c, requestLog(c, h.log), dto.BookingList(bookings), err)
}

func (h *BookingHandler) Availability(c *gin.Context) {
	workerID, ok := userIDParam(c, "id")
	if !ok {
		return
	}

	start, ok1 := timeQuery(c, "start")
	end, ok2 := timeQuery(c, "end")
	if !ok1 || !ok2 {
		httpresp.Invalid(c, "invalid_interval", "start and end must be RFC 3339 timestamps")
		return
	}

	a, err := h.uc.Availability.Execute(c.Request.Context(), workerID, start, end)
	httpresp.OK(c, requestLog(c, h.log), a, err)
}
