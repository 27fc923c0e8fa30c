package repositories

import (
	"errors"
	"fmt"
	"kursus/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCourseRepository is a GORM implementation of CourseRepository.
type GORMCourseRepository struct {
	db *gorm.DB
}

// NewGORMCourseRepository creates a new instance of GORMCourseRepository.
func NewGORMCourseRepository(db *gorm.DB) *GORMCourseRepository {
	return &GORMCourseRepository{
		db: db,
	}
}

// GetAllDiscounted retrieves every course with an active discount, with the
// instructor's username joined in.
func (r *GORMCourseRepository) GetAllDiscounted() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Model(&models.Course{}).
		Select("courses.*, users.username AS instructor_name").
		Joins("LEFT JOIN users ON users.id = courses.instructor_id").
		Where("courses.discount > 0").
		Scan(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get discounted courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a single course by its ID, with the instructor's
// username joined in when the instructor still exists.
func (r *GORMCourseRepository) GetByID(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.Model(&models.Course{}).
		Select("courses.*, users.username AS instructor_name").
		Joins("LEFT JOIN users ON users.id = courses.instructor_id").
		Where("courses.id = ?", id).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get course by ID %s: %w", id, err)
	}
	return &course, nil
}

// Create creates a new course in the database.
func (r *GORMCourseRepository) Create(course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	if err := r.db.Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// IncrementEnrolled bumps the course's total_enrolled counter by one.
func (r *GORMCourseRepository) IncrementEnrolled(id string) error {
	res := r.db.Model(&models.Course{}).
		Where("id = ?", id).
		UpdateColumn("total_enrolled", gorm.Expr("total_enrolled + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment enrollment for course %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("course with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
