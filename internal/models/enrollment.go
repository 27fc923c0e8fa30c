package models

import "time"

// Enrollment links a user to a course they have paid for. The composite
// primary key makes re-enrollment an upsert that only refreshes the date.
type Enrollment struct {
	UserID         string    `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	CourseID       string    `json:"course_id" gorm:"primaryKey;type:varchar(36)"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// TableName keeps the legacy table name used by the storefront.
func (Enrollment) TableName() string {
	return "user_courses"
}
