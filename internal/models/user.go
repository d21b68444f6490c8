package models

import "time"

// User is a marketplace account. Roles holds a capability bitset
// (see domain/user.Role).
type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Roles        uint8  `gorm:"not null;default:0" json:"roles"`

	AverageRating float64 `gorm:"type:numeric(4,2);not null;default:0" json:"average_rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
