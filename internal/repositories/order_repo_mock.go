package repositories

import (
	"fmt"
	"kursus/internal/models"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository. It
// enforces the same at-most-one-completed-order rule as the partial unique
// index, so tests exercise the conflict path without a database.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order, rejecting a duplicate completed order for the
// same (user, course) the way the store constraint would.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.Status == models.OrderStatusCompleted {
		for _, existing := range r.orders {
			if existing.UserID == order.UserID &&
				existing.CourseID == order.CourseID &&
				existing.Status == models.OrderStatusCompleted {
				return fmt.Errorf("order for user %s, course %s: %w", order.UserID, order.CourseID, ErrDuplicateCompletedOrder)
			}
		}
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// HasCompleted reports whether a completed order exists for (user, course).
func (r *MockOrderRepository) HasCompleted(userID, courseID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.UserID == userID && order.CourseID == courseID && order.Status == models.OrderStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

// GetDetailForUser returns the stored order scoped to the owning user. The
// course join columns stay zero-valued; tests that need them use the GORM
// repository instead.
func (r *MockOrderRepository) GetDetailForUser(id, userID string) (*models.OrderDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &models.OrderDetail{
		ID:            order.ID,
		UserID:        order.UserID,
		CourseID:      order.CourseID,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	}, nil
}
