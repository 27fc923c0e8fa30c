package repositories

import "kursus/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	// HasCompleted reports whether a completed order already exists for the
	// (user, course) pair. This is only a pre-check; Create is backed by a
	// partial unique index that rejects a concurrent second completion with
	// ErrDuplicateCompletedOrder.
	HasCompleted(userID, courseID string) (bool, error)
	// GetDetailForUser returns the order joined with its course, scoped to
	// the owning user. A foreign order is indistinguishable from a missing
	// one.
	GetDetailForUser(id, userID string) (*models.OrderDetail, error)
}
