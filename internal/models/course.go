package models

import "gorm.io/gorm"

// Course represents a course in the catalog.
type Course struct {
	ID              string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title           string  `json:"title" validate:"required,min=3,max=200"`
	Description     string  `json:"description" validate:"omitempty,max=2000"`
	InstructorID    *string `json:"instructor_id" gorm:"type:varchar(36)"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Discount        float64 `json:"discount" validate:"gte=0,lte=100"` // Percentage off the list price
	Duration        string  `json:"duration"`
	Rating          float64 `json:"rating" validate:"gte=0,lte=5"`
	TotalEnrolled   int     `json:"total_enrolled"` // Denormalized counter, bumped on each completed payment
	DifficultyLevel string  `json:"difficulty_level"`
	// InstructorName is filled by a LEFT JOIN on users in catalog reads.
	InstructorName string `json:"instructor_name" gorm:"-:migration;->"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CourseDetail is the single-course API view. Price and rating are formatted
// to fixed decimals as strings, matching what the storefront expects.
type CourseDetail struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	InstructorName  string  `json:"instructor_name"`
	Price           string  `json:"price"`
	Discount        float64 `json:"discount"`
	Duration        string  `json:"duration"`
	Rating          string  `json:"rating"`
	TotalEnrolled   int     `json:"total_enrolled"`
	DifficultyLevel string  `json:"difficulty_level"`
}
