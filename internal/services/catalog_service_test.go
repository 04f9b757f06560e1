package services

import (
	"testing"

	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.CreateCategory("Math")
	require.NoError(t, err)

	_, err = svc.CreateCategory("Math")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestCreateCourseRequiresCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.CreateCourse("Algebra", 42)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	math, err := svc.CreateCategory("Math")
	require.NoError(t, err)
	science, err := svc.CreateCategory("Science")
	require.NoError(t, err)
	course, err := svc.CreateCourse("Algebra", math.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateCourse(course.ID, "Linear Algebra", science.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", updated.Title)
	assert.Equal(t, science.ID, updated.CategoryID)

	_, err = svc.UpdateCourse(9999, "Nope", math.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.UpdateCourse(course.ID, "Nope", 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateVideoNormalizesURL(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	category, err := svc.CreateCategory("Math")
	require.NoError(t, err)
	course, err := svc.CreateCourse("Algebra", category.ID)
	require.NoError(t, err)

	video, err := svc.CreateVideo("Intro", "https://www.youtube.com/watch?v=ABC123", course.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/ABC123", video.EmbedURL)

	_, err = svc.CreateVideo("Intro", "https://youtu.be/XYZ", 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDeleteCourseCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")

	category, err := svc.CreateCategory("Math")
	require.NoError(t, err)
	course, err := svc.CreateCourse("Algebra", category.ID)
	require.NoError(t, err)
	_, err = svc.CreateVideo("Intro", "https://www.youtube.com/embed/ABC", course.ID)
	require.NoError(t, err)
	_, err = NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(course.ID))

	var courses, videos, enrollments int64
	db.Model(&models.Course{}).Count(&courses)
	db.Model(&models.Video{}).Where("course_id = ?", course.ID).Count(&videos)
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments)
	assert.Zero(t, courses)
	assert.Zero(t, videos, "no orphaned videos after course deletion")
	assert.Zero(t, enrollments, "no orphaned enrollments after course deletion")

	// The category itself survives.
	_, err = svc.GetCategory(category.ID)
	assert.NoError(t, err)
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	user := registerTestUser(t, db, "a@x.com", "pw1secret")

	category, err := svc.CreateCategory("Math")
	require.NoError(t, err)
	course, err := svc.CreateCourse("Algebra", category.ID)
	require.NoError(t, err)
	_, err = svc.CreateVideo("Intro", "https://www.youtube.com/embed/ABC", course.ID)
	require.NoError(t, err)
	_, err = NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(category.ID))

	var categories, courses, videos, enrollments int64
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.Course{}).Count(&courses)
	db.Model(&models.Video{}).Count(&videos)
	db.Model(&models.Enrollment{}).Count(&enrollments)
	assert.Zero(t, categories)
	assert.Zero(t, courses)
	assert.Zero(t, videos)
	assert.Zero(t, enrollments)
}

func TestDeleteMissingEntities(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	assert.ErrorIs(t, svc.DeleteCategory(1), ErrCategoryNotFound)
	assert.ErrorIs(t, svc.DeleteCourse(1), ErrCourseNotFound)
	assert.ErrorIs(t, svc.DeleteVideo(1), ErrVideoNotFound)
}
