package models

import "time"

type Dispute struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint     `gorm:"uniqueIndex;not null" json:"booking_id"`
	Booking   *Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"booking,omitempty"`

	RaisedBy     string `gorm:"size:36;index;not null" json:"raised_by"`
	RaisedByUser *User  `gorm:"foreignKey:RaisedBy" json:"raised_by_user,omitempty"`

	Reason string `gorm:"type:text;not null" json:"reason"`
	Status string `gorm:"size:20;default:'open';index" json:"status"`

	Resolution       *string `gorm:"type:text" json:"resolution"`
	ResolutionType   *string `gorm:"size:20" json:"resolution_type"`
	WorkerPercentage *int    `json:"worker_percentage"`

	ResolvedBy     *string    `gorm:"size:36" json:"resolved_by"`
	ResolvedByUser *User      `gorm:"foreignKey:ResolvedBy" json:"resolved_by_user,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
