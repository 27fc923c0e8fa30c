package repositories

import (
	"fmt"
	"kursus/internal/models"

	"gorm.io/gorm"
)

// Migrate creates the schema and the partial unique index that allows at
// most one completed order per (user, course). The index syntax is valid
// under both postgres and sqlite, so tests share it.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Blog{},
		&models.Order{},
		&models.PaymentVerification{},
		&models.Enrollment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	err = db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_completed
		 ON orders (user_id, course_id) WHERE status = 'completed'`,
	).Error
	if err != nil {
		return fmt.Errorf("failed to create completed-order index: %w", err)
	}
	return nil
}
