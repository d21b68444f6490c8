package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	"github.com/taskhub/labor-marketplace/internal/validators"
)

// idParam reads a positive numeric path parameter, writing a 400 when it
// is malformed.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httpresp.Invalid(c, "invalid_id", "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func userIDParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !validators.IsUserID(id) {
		httpresp.Invalid(c, "invalid_user_id", "Invalid user id")
		return "", false
	}
	return id, true
}

// timeQuery parses an RFC 3339 query value. ok is false when the value
// is missing or malformed.
func timeQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpresp.Invalid(c, "invalid_request", err.Error())
		return false
	}
	return true
}

func requestLog(c *gin.Context, log logrus.FieldLogger) logrus.FieldLogger {
	return middleware.Logger(c, log).WithField("user_id", middleware.ActorFrom(c).ID)
}
