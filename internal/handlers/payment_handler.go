package handlers

import (
	"errors"
	"log"

	"kursus/internal/middleware"
	"kursus/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for orders and the mock payment flow.
type PaymentHandler struct {
	service *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

// RegisterRoutes registers the order and payment routes. All of them require
// an authenticated user.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/orders", h.HandleCreateOrder)
	router.Get("/orders/:id", h.HandleGetOrderByID)
	router.Post("/payments/verify", h.HandleVerifyPayment)
	router.Post("/payments/complete", h.HandleCompletePayment)
}

// CreateOrderRequest represents the request body for a pending order.
type CreateOrderRequest struct {
	CourseID      string `json:"course_id"`
	PaymentMethod string `json:"payment_method"`
}

// HandleCreateOrder inserts a pending order for the authenticated user.
func (h *PaymentHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.CourseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "course_id is required",
		})
	}

	order, err := h.service.CreateOrder(middleware.UserID(c), req.CourseID, req.PaymentMethod)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create order",
		})
	}

	return c.JSON(fiber.Map{
		"order_id": order.ID,
	})
}

// HandleGetOrderByID retrieves an order with its discounted amount, scoped
// to the authenticated owner.
func (h *PaymentHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	detail, err := h.service.GetOrderForUser(orderID, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		log.Printf("Error getting order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve order",
		})
	}
	return c.JSON(detail)
}

// PaymentRequest represents the request body for the verify and complete
// payment calls. Field names follow the storefront's camelCase.
type PaymentRequest struct {
	CourseID      string  `json:"courseId"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
}

// HandleVerifyPayment issues a verification code for the purchase.
func (h *PaymentHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment verify body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.CourseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "courseId is required",
		})
	}

	code, err := h.service.InitiateVerification(middleware.UserID(c), req.CourseID)
	if err != nil {
		log.Printf("Error initiating payment verification: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create verification code",
		})
	}

	// A production deployment would deliver the code out of band.
	log.Printf("Verification code for user %s, course %s: %s", middleware.UserID(c), req.CourseID, code)

	return c.JSON(fiber.Map{
		"verificationCode": code,
	})
}

// HandleCompletePayment records the completed purchase and enrollment.
func (h *PaymentHandler) HandleCompletePayment(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment complete body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.CourseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "courseId is required",
		})
	}

	order, err := h.service.CompleteOrder(middleware.UserID(c), req.CourseID, req.PaymentMethod, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyPurchased) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "You have already purchased this course",
			})
		}
		log.Printf("Error completing payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete payment",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orderId": order.ID,
		"message": "Payment successful",
	})
}
