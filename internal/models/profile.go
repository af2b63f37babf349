package models

import (
	"time"
)

// Profile is the one-to-one companion record provisioned for every user.
// It is created in the same transaction as the user row and re-saved
// whenever the account is saved.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
