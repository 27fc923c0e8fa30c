package repositories

import "kursus/internal/models"

// EnrollmentRepository defines the interface for enrollment data access.
type EnrollmentRepository interface {
	// Upsert inserts the enrollment or, when the (user, course) pair already
	// exists, refreshes its enrollment date. Never duplicates.
	Upsert(enrollment *models.Enrollment) error
}
