package repositories

import (
	"errors"
	"fmt"
	"kursus/internal/models"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create inserts a new order. Inserting a second completed order for the
// same (user, course) trips the partial unique index and returns
// ErrDuplicateCompletedOrder.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order for user %s, course %s: %w", order.UserID, order.CourseID, ErrDuplicateCompletedOrder)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// HasCompleted reports whether a completed order exists for (user, course).
func (r *GORMOrderRepository) HasCompleted(userID, courseID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, models.OrderStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check completed orders: %w", err)
	}
	return count > 0, nil
}

// GetDetailForUser retrieves an order joined with its course, scoped to the
// owning user.
func (r *GORMOrderRepository) GetDetailForUser(id, userID string) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	err := r.db.Model(&models.Order{}).
		Select("orders.id, orders.user_id, orders.course_id, orders.payment_method, orders.status, orders.created_at, courses.title AS course_title, courses.price, courses.discount").
		Joins("JOIN courses ON courses.id = orders.course_id").
		Where("orders.id = ? AND orders.user_id = ?", id, userID).
		First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &detail, nil
}

// isUniqueViolation matches unique-constraint errors from both the postgres
// driver and sqlite (used in tests).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
