package services

import (
	"errors"
	"fmt"

	"kursus/internal/models"
	"kursus/internal/repositories"
)

// CourseService handles business logic related to the course catalog.
type CourseService struct {
	repo repositories.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(repo repositories.CourseRepository) *CourseService {
	return &CourseService{
		repo: repo,
	}
}

// ListDiscounted retrieves the public catalog: every course with an active
// discount.
func (s *CourseService) ListDiscounted() ([]models.Course, error) {
	return s.repo.GetAllDiscounted()
}

// GetCourse retrieves a single course as the storefront detail view, with
// price and rating formatted to fixed decimals and fallback values for
// fields an instructor may have left empty.
func (s *CourseService) GetCourse(id string) (*models.CourseDetail, error) {
	course, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	detail := &models.CourseDetail{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		InstructorName:  course.InstructorName,
		Price:           fmt.Sprintf("%.2f", course.Price),
		Discount:        course.Discount,
		Duration:        course.Duration,
		Rating:          fmt.Sprintf("%.1f", course.Rating),
		TotalEnrolled:   course.TotalEnrolled,
		DifficultyLevel: course.DifficultyLevel,
	}
	if detail.InstructorName == "" {
		detail.InstructorName = "Expert Instructor"
	}
	if detail.Duration == "" {
		detail.Duration = "Flexible"
	}
	if detail.DifficultyLevel == "" {
		detail.DifficultyLevel = "beginner"
	}
	return detail, nil
}
