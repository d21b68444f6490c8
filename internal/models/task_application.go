package models

import "time"

// TaskApplication is a worker's offer to take a task for ProposedBudget.
type TaskApplication struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TaskID uint  `gorm:"index;not null" json:"task_id"`
	Task   *Task `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"task,omitempty"`

	WorkerID string `gorm:"size:36;index;not null" json:"worker_id"`
	Worker   *User  `gorm:"foreignKey:WorkerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"worker,omitempty"`

	ProposedBudget float64 `gorm:"type:numeric(12,2);not null" json:"proposed_budget"`
	Message        string  `gorm:"type:text" json:"message,omitempty"`

	Status          string     `gorm:"size:20;default:'pending';index" json:"status"`
	RejectionReason *string    `gorm:"size:500" json:"rejection_reason,omitempty"`
	RespondedAt     *time.Time `json:"responded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
