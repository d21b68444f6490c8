package models

import "time"

type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RaterID   string `gorm:"size:36;not null;uniqueIndex:idx_rating_triple" json:"rater_id"`
	RateeID   string `gorm:"size:36;not null;index;uniqueIndex:idx_rating_triple" json:"ratee_id"`
	BookingID uint   `gorm:"not null;uniqueIndex:idx_rating_triple" json:"booking_id"`

	Score int `gorm:"not null" json:"score"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
