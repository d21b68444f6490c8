package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TaskID uint  `gorm:"index;not null" json:"task_id"`
	Task   *Task `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"task,omitempty"`

	WorkerID string `gorm:"size:36;index;not null" json:"worker_id"`
	Worker   *User  `gorm:"foreignKey:WorkerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"worker,omitempty"`

	PosterID string `gorm:"size:36;index;not null" json:"poster_id"`
	Poster   *User  `gorm:"foreignKey:PosterID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"poster,omitempty"`

	AgreedRate float64    `gorm:"type:numeric(12,2);not null" json:"agreed_rate"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`

	Status string `gorm:"size:30;default:'scheduled';index" json:"status"`

	// Version is the optimistic concurrency token, bumped on every update.
	Version uint `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}
