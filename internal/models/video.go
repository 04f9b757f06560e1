package models

import (
	"time"
)

// Video is a playable lesson inside a course. EmbedURL is always the
// normalized embeddable form, never raw user input.
type Video struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	EmbedURL  string    `gorm:"not null" json:"embed_url"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
