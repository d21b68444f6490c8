package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	domain "github.com/taskhub/labor-marketplace/internal/domain/dispute"
	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	ucDispute "github.com/taskhub/labor-marketplace/internal/usecase/dispute"
)

type AdminDisputeUseCases struct {
	List         *ucDispute.ListDisputes
	Stats        *ucDispute.GetDisputeStats
	OpenCount    *ucDispute.OpenDisputeCount
	UpdateStatus *ucDispute.UpdateDisputeStatus
	Resolve      *ucDispute.ResolveDispute
}

type AdminDisputeHandler struct {
	uc  AdminDisputeUseCases
	log logrus.FieldLogger
}

func NewAdminDisputeHandler(uc AdminDisputeUseCases, log logrus.FieldLogger) *AdminDisputeHandler {
	return &AdminDisputeHandler{uc: uc, log: log}
}

type UpdateDisputeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ResolveDisputeRequest struct {
	ResolutionType   string `json:"resolution_type" binding:"required"`
	Resolution       string `json:"resolution"`
	WorkerPercentage *int   `json:"worker_percentage"`
}

func (h *AdminDisputeHandler) List(c *gin.Context) {
	var status *domain.Status
	if raw := c.Query("status"); raw != "" {
		s := domain.Status(raw)
		status = &s
	}

	disputes, err := h.uc.List.Execute(c.Request.Context(), middleware.ActorFrom(c), status)
	httpresp.List(c, requestLog(c, h.log), disputes, err)
}

func (h *AdminDisputeHandler) Stats(c *gin.Context) {
	s, err := h.uc.Stats.Execute(c.Request.Context(), middleware.ActorFrom(c))
	httpresp.OK(c, requestLog(c, h.log), s, err)
}

func (h *AdminDisputeHandler) OpenCount(c *gin.Context) {
	n, err := h.uc.OpenCount.Execute(c.Request.Context(), middleware.ActorFrom(c))
	httpresp.OK(c, requestLog(c, h.log), gin.H{"open": n}, err)
}

func (h *AdminDisputeHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDisputeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.uc.UpdateStatus.Execute(c.Request.Context(), middleware.ActorFrom(c), id, domain.Status(req.Status))
	httpresp.OK(c, requestLog(c, h.log), d, err)
}

func (h *AdminDisputeHandler) Resolve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ResolveDisputeRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.uc.Resolve.Execute(c.Request.Context(), middleware.ActorFrom(c), ucDispute.ResolveDisputeInput{
		DisputeID:        id,
		Type:             domain.ResolutionType(req.ResolutionType),
		Notes:            req.Resolution,
		WorkerPercentage: req.WorkerPercentage,
	})
	httpresp.OK(c, requestLog(c, h.log), d, err)
}
