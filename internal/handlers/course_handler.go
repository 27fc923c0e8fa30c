package handlers

import (
	"errors"
	"log"

	"kursus/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles HTTP requests for the public course catalog.
type CourseHandler struct {
	service *services.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{
		service: service,
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *CourseHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/courses", h.HandleGetCourses)
	router.Get("/courses/:id", h.HandleGetCourseByID)
}

// HandleGetCourses retrieves all courses with an active discount.
func (h *CourseHandler) HandleGetCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListDiscounted()
	if err != nil {
		log.Printf("Error getting courses: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve courses",
		})
	}
	return c.JSON(courses)
}

// HandleGetCourseByID retrieves a single course detail view.
func (h *CourseHandler) HandleGetCourseByID(c *fiber.Ctx) error {
	courseID := c.Params("id")
	course, err := h.service.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		log.Printf("Error getting course %s: %v", courseID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve course",
		})
	}
	return c.JSON(course)
}
