package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"github.com/matrixgesnet/proyecto-cursos/internal/services"
	log "github.com/sirupsen/logrus"
)

// CatalogController handles HTTP requests for categories, courses and videos.
type CatalogController interface {
	// ListCategories lists all categories
	ListCategories(c *gin.Context)
	// ListCategoryCourses lists the courses inside one category
	ListCategoryCourses(c *gin.Context)
	// CreateCategory creates a new category (admin)
	CreateCategory(c *gin.Context)
	// DeleteCategory deletes a category and its dependents (admin)
	DeleteCategory(c *gin.Context)
	// CreateCourse creates a new course (admin)
	CreateCourse(c *gin.Context)
	// UpdateCourse updates a course's title and category (admin)
	UpdateCourse(c *gin.Context)
	// DeleteCourse deletes a course and its dependents (admin)
	DeleteCourse(c *gin.Context)
	// CreateVideo adds a video to a course, normalizing its URL (admin)
	CreateVideo(c *gin.Context)
	// DeleteVideo deletes a video (admin)
	DeleteVideo(c *gin.Context)
	// Overview returns the full catalog for the admin dashboard (admin)
	Overview(c *gin.Context)
}

type catalogController struct {
	service services.CatalogService
}

// NewCatalogController creates a new instance of CatalogController
func NewCatalogController(service services.CatalogService) CatalogController {
	return &catalogController{service: service}
}

// ListCategories godoc
// @Summary List categories
// @Description Get all course categories
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/categories [get]
func (cc *catalogController) ListCategories(c *gin.Context) {
	categories, err := cc.service.ListCategories()
	if err != nil {
		log.WithError(err).Error("Failed to list categories")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve categories"))
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListCategoryCourses godoc
// @Summary List courses in a category
// @Description Get the courses belonging to one category
// @Tags catalog
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/categories/{id}/courses [get]
func (cc *catalogController) ListCategoryCourses(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	category, err := cc.service.GetCategory(id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
			return
		}
		log.WithError(err).Error("Failed to load category")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve category"))
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Create a new category with a unique name
// @Tags admin
// @Accept json
// @Produce json
// @Param category body object true "Category name"
// @Success 201 {object} models.Category
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/categories [post]
func (cc *catalogController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	category, err := cc.service.CreateCategory(req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateName) {
			c.JSON(http.StatusConflict, models.NewAPIError(models.ErrDuplicateName, "That category already exists"))
			return
		}
		log.WithError(err).Error("Failed to create category")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create category"))
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category together with its courses, videos and enrollments
// @Tags admin
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id} [delete]
func (cc *catalogController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := cc.service.DeleteCategory(id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
			return
		}
		log.WithError(err).Error("Failed to delete category")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete category"))
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCourse godoc
// @Summary Create a course
// @Description Create a course inside an existing category
// @Tags admin
// @Accept json
// @Produce json
// @Param course body object true "Course title and category"
// @Success 201 {object} models.Course
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/courses [post]
func (cc *catalogController) CreateCourse(c *gin.Context) {
	var req struct {
		Title      string `json:"title" binding:"required"`
		CategoryID uint   `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	course, err := cc.service.CreateCourse(req.Title, req.CategoryID)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
			return
		}
		log.WithError(err).Error("Failed to create course")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create course"))
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Update a course's title and category
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param course body object true "Course title and category"
// @Success 200 {object} models.Course
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/courses/{id} [put]
func (cc *catalogController) UpdateCourse(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Title      string `json:"title" binding:"required"`
		CategoryID uint   `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	course, err := cc.service.UpdateCourse(id, req.Title, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCourseNotFound, "Course not found"))
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCategoryNotFound, "Category not found"))
		default:
			log.WithError(err).Error("Failed to update course")
			c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update course"))
		}
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Delete a course together with its videos and enrollments
// @Tags admin
// @Param id path int true "Course ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/courses/{id} [delete]
func (cc *catalogController) DeleteCourse(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := cc.service.DeleteCourse(id); err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCourseNotFound, "Course not found"))
			return
		}
		log.WithError(err).Error("Failed to delete course")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete course"))
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateVideo godoc
// @Summary Add a video to a course
// @Description Add a video; YouTube watch and short links are rewritten to the embeddable form
// @Tags admin
// @Accept json
// @Produce json
// @Param video body object true "Video title, URL and course"
// @Success 201 {object} models.Video
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/videos [post]
func (cc *catalogController) CreateVideo(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		URL      string `json:"url" binding:"required,url"`
		CourseID uint   `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	video, err := cc.service.CreateVideo(req.Title, req.URL, req.CourseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrCourseNotFound, "Course not found"))
			return
		}
		log.WithError(err).Error("Failed to create video")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create video"))
		return
	}
	c.JSON(http.StatusCreated, video)
}

// DeleteVideo godoc
// @Summary Delete a video
// @Tags admin
// @Param id path int true "Video ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/videos/{id} [delete]
func (cc *catalogController) DeleteVideo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := cc.service.DeleteVideo(id); err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrVideoNotFound, "Video not found"))
			return
		}
		log.WithError(err).Error("Failed to delete video")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete video"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Overview godoc
// @Summary Admin catalog overview
// @Description Full listing of categories, courses and videos for the dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/admin/overview [get]
func (cc *catalogController) Overview(c *gin.Context) {
	categories, err := cc.service.ListCategories()
	if err == nil {
		var courses []models.Course
		if courses, err = cc.service.ListCourses(); err == nil {
			var videos []models.Video
			if videos, err = cc.service.ListVideos(); err == nil {
				c.JSON(http.StatusOK, gin.H{
					"categories": categories,
					"courses":    courses,
					"videos":     videos,
				})
				return
			}
		}
	}
	log.WithError(err).Error("Failed to build admin overview")
	c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to build overview"))
}

// paramID parses the :id path parameter, responding with 400 when malformed.
func paramID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid ID format"))
		return 0, false
	}
	return uint(id), true
}
