package services

import (
	"testing"

	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCourse(t *testing.T, db *gorm.DB) *models.Course {
	t.Helper()
	catalog := NewCatalogService(db)
	category, err := catalog.CreateCategory("Math")
	require.NoError(t, err)
	course, err := catalog.CreateCourse("Algebra", category.ID)
	require.NoError(t, err)
	return course
}

func TestEnrollIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")
	course := seedCourse(t, db)

	result, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, ResultEnrolled, result)

	result, err = svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, ResultAlreadyEnrolled, result)

	var count int64
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count)
	assert.Equal(t, int64(1), count, "exactly one enrollment row per (user, course) pair")
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")

	_, err := svc.Enroll(user.ID, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestIsEnrolledReflectsLedger(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")
	other := registerTestUser(t, db, "b@x.com", "pw2secret")
	course := seedCourse(t, db)

	enrolled, err := svc.IsEnrolled(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	_, err = svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	enrolled, err = svc.IsEnrolled(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	// The other user stays unenrolled.
	enrolled, err = svc.IsEnrolled(other.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestEnrollmentUniqueConstraint(t *testing.T) {
	db := setupTestDB(t)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")
	course := seedCourse(t, db)

	// Two writers that both observed "no enrollment": the second insert hits
	// the unique constraint instead of creating a duplicate row.
	require.NoError(t, db.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID}).Error)
	err := db.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestEnrollLosingRacerGetsAlreadyEnrolled(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEnrollmentService(db)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")
	course := seedCourse(t, db)

	// A concurrent writer committed between our existence check and insert.
	require.NoError(t, db.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID}).Error)

	result, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, ResultAlreadyEnrolled, result)
}
