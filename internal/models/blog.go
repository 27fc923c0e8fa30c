package models

import "time"

// Blog post statuses.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// Blog represents a CMS post. Public reads only see published posts whose
// publish date (if any) has passed; the admin listing sees everything.
type Blog struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Content     string     `json:"content" validate:"required"`
	PublishDate *time.Time `json:"publish_date"`
	Status      string     `json:"status" gorm:"type:varchar(20)" validate:"omitempty,oneof=draft published"`
	Category    string     `json:"category" gorm:"type:varchar(100)"`
	AuthorID    string     `json:"author_id" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	// AuthorName is filled by a LEFT JOIN on users in read queries.
	AuthorName string `json:"author_name" gorm:"-:migration;->"`
}
