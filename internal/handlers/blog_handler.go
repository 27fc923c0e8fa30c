package handlers

import (
	"errors"
	"log"
	"time"

	"kursus/internal/middleware"
	"kursus/internal/models"
	"kursus/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BlogHandler handles HTTP requests for the blog CMS.
type BlogHandler struct {
	service  *services.BlogService
	validate *validator.Validate
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *services.BlogService) *BlogHandler {
	return &BlogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the unauthenticated read routes.
func (h *BlogHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/blogs", h.HandleListBlogs)
	router.Get("/blogs/:id", h.HandleGetBlogByID)
}

// RegisterProtectedRoutes registers the authenticated write routes.
func (h *BlogHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/blogs", h.HandleCreateBlog)
	router.Put("/blogs/:id", h.HandleUpdateBlog)
	router.Delete("/blogs/:id", h.HandleDeleteBlog)
}

// RegisterAdminRoutes registers the admin CMS routes.
func (h *BlogHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/blogs", h.HandleListAllBlogs)
	router.Post("/blogs", h.HandleAdminCreateBlog)
}

// HandleListBlogs retrieves the public feed of published posts.
func (h *BlogHandler) HandleListBlogs(c *fiber.Ctx) error {
	blogs, err := h.service.ListPublished()
	if err != nil {
		log.Printf("Error listing blogs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve blogs",
		})
	}
	return c.JSON(blogs)
}

// HandleGetBlogByID retrieves a single published post.
func (h *BlogHandler) HandleGetBlogByID(c *fiber.Ctx) error {
	blogID := c.Params("id")
	blog, err := h.service.GetPublished(blogID)
	if err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Blog not found",
			})
		}
		log.Printf("Error getting blog %s: %v", blogID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve blog",
		})
	}
	return c.JSON(blog)
}

// BlogRequest represents the request body for creating or updating a post.
type BlogRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Content     string     `json:"content" validate:"required"`
	PublishDate *time.Time `json:"publishDate"`
	Status      string     `json:"status" validate:"omitempty,oneof=draft published"`
	Category    string     `json:"category" validate:"omitempty,max=100"`
}

func (r *BlogRequest) toModel() *models.Blog {
	return &models.Blog{
		Title:       r.Title,
		Content:     r.Content,
		PublishDate: r.PublishDate,
		Status:      r.Status,
		Category:    r.Category,
	}
}

// HandleCreateBlog creates a post authored by the authenticated user.
func (h *BlogHandler) HandleCreateBlog(c *fiber.Ctx) error {
	var req BlogRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing blog request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	blog := req.toModel()
	if err := h.service.Create(middleware.UserID(c), blog); err != nil {
		log.Printf("Error creating blog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create blog post",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Blog post created successfully",
		"blogId":  blog.ID,
	})
}

// HandleUpdateBlog updates a post; only its author can do so. A non-author
// gets the same 404 as a missing post.
func (h *BlogHandler) HandleUpdateBlog(c *fiber.Ctx) error {
	blogID := c.Params("id")
	var req BlogRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing blog request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	if err := h.service.Update(blogID, middleware.UserID(c), req.toModel()); err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Blog not found",
			})
		}
		log.Printf("Error updating blog %s: %v", blogID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update blog post",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Blog post updated successfully",
	})
}

// HandleDeleteBlog deletes a post; only its author can do so.
func (h *BlogHandler) HandleDeleteBlog(c *fiber.Ctx) error {
	blogID := c.Params("id")
	if err := h.service.Delete(blogID, middleware.UserID(c)); err != nil {
		if errors.Is(err, services.ErrBlogNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Blog not found",
			})
		}
		log.Printf("Error deleting blog %s: %v", blogID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete blog post",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Blog post deleted successfully",
	})
}

// HandleListAllBlogs retrieves every post including drafts (admin view).
func (h *BlogHandler) HandleListAllBlogs(c *fiber.Ctx) error {
	blogs, err := h.service.ListAll()
	if err != nil {
		log.Printf("Error listing all blogs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve blogs",
		})
	}
	return c.JSON(blogs)
}

// HandleAdminCreateBlog creates a post through the admin CMS.
func (h *BlogHandler) HandleAdminCreateBlog(c *fiber.Ctx) error {
	var req BlogRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing blog request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	blog := req.toModel()
	if err := h.service.Create(middleware.UserID(c), blog); err != nil {
		log.Printf("Error creating blog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create blog post",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Blog post created successfully",
		"blogId":  blog.ID,
	})
}
