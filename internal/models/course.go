package models

import (
	"time"
)

// Course belongs to exactly one category and owns its videos. Enrollment rows
// referencing the course grant users access to those videos.
type Course struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Videos     []Video   `gorm:"foreignKey:CourseID" json:"videos,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
