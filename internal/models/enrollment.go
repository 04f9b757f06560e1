package models

import (
	"time"
)

// Enrollment links a user to a course. Its existence is the access-control
// fact that gates course content. The (user, course) pair is unique at the
// database level so concurrent enroll requests cannot produce duplicates.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_course" json:"user_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_user_course" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
