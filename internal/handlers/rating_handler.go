package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	ucRating "github.com/taskhub/labor-marketplace/internal/usecase/rating"
)

type RatingHandler struct {
	submit *ucRating.SubmitOrUpdateRating
	get    *ucRating.GetUserRating
	log    logrus.FieldLogger
}

func NewRatingHandler(
	submit *ucRating.SubmitOrUpdateRating,
	get *ucRating.GetUserRating,
	log logrus.FieldLogger,
) *RatingHandler {
	return &RatingHandler{submit: submit, get: get, log: log}
}

type SubmitRatingRequest struct {
	RateeID   string `json:"ratee_id" binding:"required,uuid"`
	BookingID uint   `json:"booking_id" binding:"required"`
	Score     int    `json:"score"`
}

// Submit inserts the caller's rating for the booking or overwrites the
// one they already gave.
func (h *RatingHandler) Submit(c *gin.Context) {
	var req SubmitRatingRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.submit.Execute(c.Request.Context(), middleware.ActorFrom(c), ucRating.SubmitRatingInput{
		RateeID:   req.RateeID,
		BookingID: req.BookingID,
		Score:     req.Score,
	})
	httpresp.OK(c, requestLog(c, h.log), r, err)
}

func (h *RatingHandler) GetUserRating(c *gin.Context) {
	userID, ok := userIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.get.Execute(c.Request.Context(), userID)
	httpresp.OK(c, requestLog(c, h.log), s, err)
}
