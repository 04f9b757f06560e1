package services

import (
	"errors"

	"github.com/matrixgesnet/proyecto-cursos/internal/metrics"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"gorm.io/gorm"
)

// ErrCourseNotFound is returned when an operation references a missing course.
var ErrCourseNotFound = errors.New("course_not_found")

// EnrollResult is the outcome of an enroll request.
type EnrollResult int

const (
	// ResultEnrolled means a new enrollment row was created.
	ResultEnrolled EnrollResult = iota
	// ResultAlreadyEnrolled means the (user, course) pair was already enrolled.
	// It is a soft, idempotent outcome, not an error.
	ResultAlreadyEnrolled
)

// EnrollmentService records which users are enrolled in which courses and
// answers the access question that gates course content.
type EnrollmentService interface {
	Enroll(userID, courseID uint) (EnrollResult, error)
	IsEnrolled(userID, courseID uint) (bool, error)
}

type enrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) EnrollmentService {
	return &enrollmentService{db: db}
}

func (s *enrollmentService) Enroll(userID, courseID uint) (EnrollResult, error) {
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCourseNotFound
		}
		return 0, err
	}

	enrolled, err := s.IsEnrolled(userID, courseID)
	if err != nil {
		return 0, err
	}
	if enrolled {
		metrics.EnrollmentsTotal.WithLabelValues("already_enrolled").Inc()
		return ResultAlreadyEnrolled, nil
	}

	enrollment := models.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.db.Create(&enrollment).Error; err != nil {
		// A concurrent request won the race for the same pair. The unique
		// constraint on (user, course) makes this the already-enrolled case.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.EnrollmentsTotal.WithLabelValues("already_enrolled").Inc()
			return ResultAlreadyEnrolled, nil
		}
		return 0, err
	}

	metrics.EnrollmentsTotal.WithLabelValues("enrolled").Inc()
	return ResultEnrolled, nil
}

func (s *enrollmentService) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
