package models

import "time"

// Order payment statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// Order represents a purchase of a course by a user. A user may accumulate
// any number of pending orders for a course, but a store-level partial unique
// index on (user_id, course_id) WHERE status = 'completed' guarantees at most
// one completed order per pair.
type Order struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `json:"user_id" gorm:"type:varchar(36);index"`
	CourseID      string    `json:"course_id" gorm:"type:varchar(36);index"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(50)"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status" gorm:"type:varchar(20)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrderDetail is the owner-scoped order view joined with its course. Amount
// is the final price after the course discount, formatted to two decimals.
type OrderDetail struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CourseID      string    `json:"course_id"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	CourseTitle   string    `json:"course_title"`
	Price         float64   `json:"price"`
	Discount      float64   `json:"discount"`
	Amount        string    `json:"amount"`
}
