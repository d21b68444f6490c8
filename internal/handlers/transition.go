package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type bookingTransition func(ctx context.Context, actor user.Actor, bookingID uint) (*models.Booking, error)

func (h *BookingHandler) transition(c *gin.Context, run bookingTransition) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	b, err := run(c.Request.Context(), middleware.ActorFrom(c), id)
	httpresp.OK(c, requestLog(c, h.log), b, err)
}
