package models

import (
	"time"
)

// Category groups courses under a unique name.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Courses   []Course  `gorm:"foreignKey:CategoryID" json:"courses,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
