package repositories

import "kursus/internal/models"

// BlogRepository defines the interface for blog data access.
type BlogRepository interface {
	// ListPublished returns published posts whose publish date has passed
	// (or was never set), newest first, with the author's username joined.
	ListPublished() ([]models.Blog, error)
	// GetPublished returns a single published post by ID.
	GetPublished(id string) (*models.Blog, error)
	// ListAll returns every post including drafts, newest first. Admin only.
	ListAll() ([]models.Blog, error)
	Create(blog *models.Blog) error
	// UpdateOwned updates a post only when authorID matches the post's
	// author; reports ErrNotFound when zero rows were affected.
	UpdateOwned(blog *models.Blog, authorID string) error
	// DeleteOwned deletes a post only when authorID matches the post's
	// author; reports ErrNotFound when zero rows were affected.
	DeleteOwned(id, authorID string) error
}
