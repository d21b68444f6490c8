package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/httperr"
	"github.com/taskhub/labor-marketplace/internal/result"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Respond writes the tri-state result for (v, err) with the status derived
// from the failure kind.
func Respond[T any](c *gin.Context, log logrus.FieldLogger, status int, v T, err error) {
	if log != nil {
		log = log.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	}

	r, kind, expected := result.From(v, err, log)
	switch {
	case r.Success:
		c.JSON(status, r)
	case expected:
		c.JSON(httperr.Status(kind), r)
	default:
		c.JSON(http.StatusInternalServerError, r)
	}
}

func OK[T any](c *gin.Context, log logrus.FieldLogger, v T, err error) {
	Respond(c, log, http.StatusOK, v, err)
}

func Created[T any](c *gin.Context, log logrus.FieldLogger, v T, err error) {
	Respond(c, log, http.StatusCreated, v, err)
}

func List[T any](c *gin.Context, log logrus.FieldLogger, data []T, err error) {
	if data == nil {
		data = []T{}
	}
	Respond(c, log, http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	}, err)
}

// Invalid reports a malformed request in the same envelope.
func Invalid(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, result.Fail[any](code, message))
}
