package services

import (
	"errors"
	"fmt"

	"kursus/internal/models"
	"kursus/internal/repositories"
)

// BlogService handles business logic for the blog CMS.
type BlogService struct {
	repo repositories.BlogRepository
}

// NewBlogService creates a new BlogService.
func NewBlogService(repo repositories.BlogRepository) *BlogService {
	return &BlogService{
		repo: repo,
	}
}

// ListPublished retrieves the public blog feed.
func (s *BlogService) ListPublished() ([]models.Blog, error) {
	return s.repo.ListPublished()
}

// GetPublished retrieves a single published post.
func (s *BlogService) GetPublished(id string) (*models.Blog, error) {
	blog, err := s.repo.GetPublished(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return blog, nil
}

// ListAll retrieves every post including unpublished drafts. Callers must
// gate this behind the admin check.
func (s *BlogService) ListAll() ([]models.Blog, error) {
	return s.repo.ListAll()
}

// Create creates a new post authored by the given user.
func (s *BlogService) Create(authorID string, blog *models.Blog) error {
	blog.AuthorID = authorID
	if blog.Status == "" {
		blog.Status = models.BlogStatusDraft
	}
	if err := s.repo.Create(blog); err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

// Update updates a post only when actorID authored it. A non-author gets
// ErrBlogNotFound, same as for a post that does not exist, so the endpoint
// leaks nothing about foreign posts.
func (s *BlogService) Update(id, actorID string, blog *models.Blog) error {
	blog.ID = id
	if err := s.repo.UpdateOwned(blog, actorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	return nil
}

// Delete deletes a post only when actorID authored it.
func (s *BlogService) Delete(id, actorID string) error {
	if err := s.repo.DeleteOwned(id, actorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	return nil
}
