package repositories

import (
	"fmt"
	"kursus/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVerificationRepository is a GORM implementation of
// VerificationRepository.
type GORMVerificationRepository struct {
	db *gorm.DB
}

// NewGORMVerificationRepository creates a new instance of
// GORMVerificationRepository.
func NewGORMVerificationRepository(db *gorm.DB) *GORMVerificationRepository {
	return &GORMVerificationRepository{
		db: db,
	}
}

// Create stores a new payment verification record.
func (r *GORMVerificationRepository) Create(verification *models.PaymentVerification) error {
	if verification.ID == "" {
		verification.ID = uuid.New().String()
	}
	if err := r.db.Create(verification).Error; err != nil {
		return fmt.Errorf("failed to create payment verification: %w", err)
	}
	return nil
}
