package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
	log   logrus.FieldLogger
}

func NewAuditLogsHandler(store audit.Store, log logrus.FieldLogger) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, log: log}
}

type AuditLogPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		UserID: c.Query("user_id"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional date range, whole days in UTC
	// --------------------------------------------------
	if raw := c.Query("from"); raw != "" {
		if from, err := time.Parse("2006-01-02", raw); err == nil {
			f.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := time.Parse("2006-01-02", raw); err == nil {
			end := to.Add(24 * time.Hour)
			f.To = &end
		}
	}

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), f)
	if logs == nil {
		logs = []models.AuditLog{}
	}

	httpresp.OK(c, requestLog(c, h.log), AuditLogPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  logs,
	}, err)
}
