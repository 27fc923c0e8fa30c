package repositories

import (
	"errors"
	"fmt"
	"kursus/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBlogRepository is a GORM implementation of BlogRepository.
type GORMBlogRepository struct {
	db *gorm.DB
}

// NewGORMBlogRepository creates a new instance of GORMBlogRepository.
func NewGORMBlogRepository(db *gorm.DB) *GORMBlogRepository {
	return &GORMBlogRepository{
		db: db,
	}
}

// ListPublished retrieves published posts whose publish date has passed.
func (r *GORMBlogRepository) ListPublished() ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Model(&models.Blog{}).
		Select("blogs.*, users.username AS author_name").
		Joins("LEFT JOIN users ON users.id = blogs.author_id").
		Where("blogs.status = ?", models.BlogStatusPublished).
		Where("blogs.publish_date IS NULL OR blogs.publish_date <= ?", time.Now()).
		Order("blogs.created_at DESC").
		Scan(&blogs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list published blogs: %w", err)
	}
	return blogs, nil
}

// GetPublished retrieves a single published post by its ID.
func (r *GORMBlogRepository) GetPublished(id string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Model(&models.Blog{}).
		Select("blogs.*, users.username AS author_name").
		Joins("LEFT JOIN users ON users.id = blogs.author_id").
		Where("blogs.id = ? AND blogs.status = ?", id, models.BlogStatusPublished).
		First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blog with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get blog by ID %s: %w", id, err)
	}
	return &blog, nil
}

// ListAll retrieves every post including drafts, newest first.
func (r *GORMBlogRepository) ListAll() ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Model(&models.Blog{}).
		Select("blogs.*, users.username AS author_name").
		Joins("LEFT JOIN users ON users.id = blogs.author_id").
		Order("blogs.created_at DESC").
		Scan(&blogs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

// Create creates a new blog post.
func (r *GORMBlogRepository) Create(blog *models.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.New().String()
	}
	if err := r.db.Create(blog).Error; err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// UpdateOwned updates a post with an author-scoped WHERE. Zero rows affected
// means the post does not exist or belongs to someone else; the caller
// cannot tell which.
func (r *GORMBlogRepository) UpdateOwned(blog *models.Blog, authorID string) error {
	res := r.db.Model(&models.Blog{}).
		Where("id = ? AND author_id = ?", blog.ID, authorID).
		Updates(map[string]interface{}{
			"title":        blog.Title,
			"content":      blog.Content,
			"publish_date": blog.PublishDate,
			"status":       blog.Status,
			"category":     blog.Category,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update blog %s: %w", blog.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("blog with ID %s: %w", blog.ID, ErrNotFound)
	}
	return nil
}

// DeleteOwned deletes a post with an author-scoped WHERE.
func (r *GORMBlogRepository) DeleteOwned(id, authorID string) error {
	res := r.db.Delete(&models.Blog{}, "id = ? AND author_id = ?", id, authorID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete blog %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("blog with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
