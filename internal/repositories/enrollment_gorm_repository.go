package repositories

import (
	"fmt"
	"kursus/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMEnrollmentRepository is a GORM implementation of EnrollmentRepository.
type GORMEnrollmentRepository struct {
	db *gorm.DB
}

// NewGORMEnrollmentRepository creates a new instance of
// GORMEnrollmentRepository.
func NewGORMEnrollmentRepository(db *gorm.DB) *GORMEnrollmentRepository {
	return &GORMEnrollmentRepository{
		db: db,
	}
}

// Upsert inserts the enrollment, or refreshes the enrollment date when the
// (user, course) pair already exists.
func (r *GORMEnrollmentRepository) Upsert(enrollment *models.Enrollment) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enrollment_date"}),
	}).Create(enrollment).Error
	if err != nil {
		return fmt.Errorf("failed to upsert enrollment: %w", err)
	}
	return nil
}
