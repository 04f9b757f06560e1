package models

import (
	"time"
)

// Session records a login. The issued bearer token references a session row
// by ID, so deleting the row revokes the token immediately regardless of its
// embedded expiry.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (Session) TableName() string {
	return "sessions"
}
