package dto

import (
	"time"

	"github.com/taskhub/labor-marketplace/internal/models"
)

type BookingListDTO struct {
	ID         uint       `json:"id"`
	TaskID     uint       `json:"task_id"`
	TaskTitle  string     `json:"task_title,omitempty"`
	WorkerID   string     `json:"worker_id"`
	PosterID   string     `json:"poster_id"`
	AgreedRate float64    `json:"agreed_rate"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	Status     string     `json:"status"`
	Version    uint       `json:"version"`
}

func BookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		item := BookingListDTO{
			ID:         b.ID,
			TaskID:     b.TaskID,
			WorkerID:   b.WorkerID,
			PosterID:   b.PosterID,
			AgreedRate: b.AgreedRate,
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			Status:     b.Status,
			Version:    b.Version,
		}
		if b.Task != nil {
			item.TaskTitle = b.Task.Title
		}
		out = append(out, item)
	}
	return out
}
