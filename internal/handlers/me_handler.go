package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	"github.com/taskhub/labor-marketplace/internal/result"
)

type MeHandler struct {
	users user.Repository
	log   logrus.FieldLogger
}

func NewMeHandler(users user.Repository, log logrus.FieldLogger) *MeHandler {
	return &MeHandler{users: users, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	u, err := h.users.GetByID(c.Request.Context(), actor.ID)
	if errors.Is(err, user.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, result.Fail[any]("user_not_found", "Account no longer exists"))
		return
	}
	if err != nil {
		httpresp.OK[*UserResponse](c, requestLog(c, h.log), nil, err)
		return
	}

	resp := userResponse(u)
	httpresp.OK(c, requestLog(c, h.log), &resp, nil)
}
