package services

import (
	"errors"

	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateName is returned when creating a category whose name exists.
	ErrDuplicateName = errors.New("duplicate_name")
	// ErrCategoryNotFound is returned when an operation references a missing category.
	ErrCategoryNotFound = errors.New("category_not_found")
	// ErrVideoNotFound is returned when an operation references a missing video.
	ErrVideoNotFound = errors.New("video_not_found")
)

// CatalogService manages categories, courses and videos. Deleting a category
// or course cascades to its dependents inside a single transaction so no
// orphaned foreign keys survive.
type CatalogService interface {
	CreateCategory(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	DeleteCategory(id uint) error

	CreateCourse(title string, categoryID uint) (*models.Course, error)
	UpdateCourse(id uint, title string, categoryID uint) (*models.Course, error)
	ListCourses() ([]models.Course, error)
	GetCourse(id uint) (*models.Course, error)
	DeleteCourse(id uint) error

	CreateVideo(title, rawURL string, courseID uint) (*models.Video, error)
	ListVideos() ([]models.Video, error)
	DeleteVideo(id uint) error
}

type catalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) CreateCategory(name string) (*models.Category, error) {
	category := models.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &category, nil
}

func (s *catalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *catalogService) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Courses").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes the category together with its courses and their
// videos and enrollments, atomically.
func (s *catalogService) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var courseIDs []uint
		if err := tx.Model(&models.Course{}).
			Where("category_id = ?", id).
			Pluck("id", &courseIDs).Error; err != nil {
			return err
		}

		if len(courseIDs) > 0 {
			if err := tx.Where("course_id IN ?", courseIDs).Delete(&models.Video{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id IN ?", courseIDs).Delete(&models.Enrollment{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Course{}, courseIDs).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&category).Error
	})
}

func (s *catalogService) CreateCourse(title string, categoryID uint) (*models.Course, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	course := models.Course{Title: title, CategoryID: categoryID}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *catalogService) UpdateCourse(id uint, title string, categoryID uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	course.Title = title
	course.CategoryID = categoryID
	if err := s.db.Save(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *catalogService) ListCourses() ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *catalogService) GetCourse(id uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.Preload("Videos").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// DeleteCourse removes the course together with its videos and enrollments,
// atomically.
func (s *catalogService) DeleteCourse(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.Video{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
}

func (s *catalogService) CreateVideo(title, rawURL string, courseID uint) (*models.Video, error) {
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	video := models.Video{Title: title, EmbedURL: NormalizeEmbedURL(rawURL), CourseID: courseID}
	if err := s.db.Create(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *catalogService) ListVideos() ([]models.Video, error) {
	var videos []models.Video
	if err := s.db.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *catalogService) DeleteVideo(id uint) error {
	result := s.db.Delete(&models.Video{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}
