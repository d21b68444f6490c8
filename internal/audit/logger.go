package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/taskhub/labor-marketplace/internal/models"
)

// Filter narrows an audit listing. Zero values mean "any".
type Filter struct {
	Action string
	Entity string
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Store interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(
	ctx context.Context,
	userID *string,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  metaJSON,
		CreatedAt: time.Now().UTC(),
	}

	return l.store.CreateAuditLog(ctx, &log)
}
