package models

import "time"

// Task is only read by the booking core; task CRUD lives elsewhere.
type Task struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PosterID string `gorm:"size:36;index;not null" json:"poster_id"`
	Poster   *User  `gorm:"foreignKey:PosterID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"poster,omitempty"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;default:'open'" json:"status"`

	// StartDate and DueDate become the booking window when an
	// application is accepted.
	StartDate  *time.Time `json:"start_date"`
	DueDate    *time.Time `json:"due_date"`
	AssignedAt *time.Time `json:"assigned_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
