// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the Inkwell application.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Profile   *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
