package repositories

import "kursus/internal/models"

// CourseRepository defines the interface for course data access.
type CourseRepository interface {
	// GetAllDiscounted returns the public catalog: every course with an
	// active discount, enriched with its instructor's username.
	GetAllDiscounted() ([]models.Course, error)
	GetByID(id string) (*models.Course, error)
	Create(course *models.Course) error
	// IncrementEnrolled bumps the denormalized enrollment counter.
	IncrementEnrolled(id string) error
}
