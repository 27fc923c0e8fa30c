package models

import "time"

// PaymentVerification is a mock-OTP record created when a payment is
// initiated. One row per initiation call, valid for ten minutes.
type PaymentVerification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index"`
	CourseID  string    `json:"course_id" gorm:"type:varchar(36)"`
	Code      string    `json:"code" gorm:"type:varchar(6)"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
