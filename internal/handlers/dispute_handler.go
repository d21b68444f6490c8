package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	ucDispute "github.com/taskhub/labor-marketplace/internal/usecase/dispute"
)

type DisputeHandler struct {
	raise    *ucDispute.RaiseDispute
	canRaise *ucDispute.CanRaiseDispute
	listMine *ucDispute.ListUserDisputes
	details  *ucDispute.GetDisputeDetails
	log      logrus.FieldLogger
}

func NewDisputeHandler(
	raise *ucDispute.RaiseDispute,
	canRaise *ucDispute.CanRaiseDispute,
	listMine *ucDispute.ListUserDisputes,
	details *ucDispute.GetDisputeDetails,
	log logrus.FieldLogger,
) *DisputeHandler {
	return &DisputeHandler{
		raise:    raise,
		canRaise: canRaise,
		listMine: listMine,
		details:  details,
		log:      log,
	}
}

type RaiseDisputeRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

func (h *DisputeHandler) Raise(c *gin.Context) {
	var req RaiseDisputeRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.raise.Execute(c.Request.Context(), middleware.ActorFrom(c), ucDispute.RaiseDisputeInput{
		BookingID: req.BookingID,
		Reason:    req.Reason,
	})
	httpresp.Created(c, requestLog(c, h.log), d, err)
}

func (h *DisputeHandler) Eligibility(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	e, err := h.canRaise.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	httpresp.OK(c, requestLog(c, h.log), e, err)
}

func (h *DisputeHandler) ListMine(c *gin.Context) {
	disputes, err := h.listMine.Execute(c.Request.Context(), middleware.ActorFrom(c))
	httpresp.List(c, requestLog(c, h.log), disputes, err)
}

func (h *DisputeHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	d, err := h.details.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	httpresp.OK(c, requestLog(c, h.log), d, err)
}
