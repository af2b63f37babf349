package models

import (
	"fmt"
	"time"
)

// MaxTitleLen is the upper bound on post titles.
const MaxTitleLen = 100

// Post represents a single authored blog entry.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:100;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	DatePosted time.Time `gorm:"not null;index" json:"date_posted"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// String renders a post as its title.
func (p *Post) String() string {
	return p.Title
}

// DetailPath returns the stable detail URL for the post.
func (p *Post) DetailPath() string {
	return fmt.Sprintf("/api/posts/%d", p.ID)
}

// ListPath returns the URL of the post listing view.
func ListPath() string {
	return "/api/posts"
}
