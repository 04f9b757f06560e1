package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matrixgesnet/proyecto-cursos/internal/middleware"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"github.com/matrixgesnet/proyecto-cursos/internal/services"
	log "github.com/sirupsen/logrus"
)

// EnrollmentController handles enrolling in courses and the enrollment-gated
// course view.
type EnrollmentController struct {
	enrollments services.EnrollmentService
	catalog     services.CatalogService
}

func NewEnrollmentController(enrollments services.EnrollmentService, catalog services.CatalogService) *EnrollmentController {
	return &EnrollmentController{enrollments: enrollments, catalog: catalog}
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Enroll the current user in a course (simulated purchase). Repeat calls are idempotent.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]string "already enrolled"
// @Success 201 {object} map[string]string "enrolled"
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/courses/{id}/enroll [post]
func (ec *EnrollmentController) Enroll(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	courseID, ok := paramID(c)
	if !ok {
		return
	}

	result, err := ec.enrollments.Enroll(principal.UserID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCourseNotFound, "Course not found"))
			return
		}
		log.WithError(err).Error("Failed to enroll user")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to enroll"))
		return
	}

	if result == services.ResultAlreadyEnrolled {
		c.JSON(http.StatusOK, gin.H{"message": "You are already enrolled in this course"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Enrolled successfully"})
}

// ViewCourse godoc
// @Summary View a course
// @Description Returns the course with its videos when the current user is enrolled. Otherwise the course is described without its content.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/courses/{id} [get]
func (ec *EnrollmentController) ViewCourse(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	courseID, ok := paramID(c)
	if !ok {
		return
	}

	// Enrollment check comes before any content is loaded.
	enrolled, err := ec.enrollments.IsEnrolled(principal.UserID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to check enrollment")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to load course"))
		return
	}

	course, err := ec.catalog.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCourseNotFound, "Course not found"))
			return
		}
		log.WithError(err).Error("Failed to load course")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to load course"))
		return
	}

	if !enrolled {
		// Soft denial: describe the course, withhold the videos.
		c.JSON(http.StatusForbidden, gin.H{
			"error": models.NewAPIError(models.ErrNotEnrolled, "You must enroll to view this content"),
			"course": gin.H{
				"id":          course.ID,
				"title":       course.Title,
				"category_id": course.CategoryID,
			},
		})
		return
	}

	c.JSON(http.StatusOK, course)
}
