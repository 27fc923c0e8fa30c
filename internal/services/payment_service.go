package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"kursus/internal/models"
	"kursus/internal/repositories"
)

// EventPublisher publishes enrollment events to the message broker. The
// payment service treats publishing as best-effort: a nil publisher or a
// publish failure never fails the request.
type EventPublisher interface {
	PublishEnrollmentCompleted(event map[string]interface{}) error
}

// verificationTTL is how long a payment verification code stays valid.
const verificationTTL = 10 * time.Minute

// PaymentService handles the order/enrollment workflow: pending orders,
// mock-OTP verification, and payment completion.
type PaymentService struct {
	orderRepo        repositories.OrderRepository
	courseRepo       repositories.CourseRepository
	enrollmentRepo   repositories.EnrollmentRepository
	verificationRepo repositories.VerificationRepository
	publisher        EventPublisher
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	orderRepo repositories.OrderRepository,
	courseRepo repositories.CourseRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	verificationRepo repositories.VerificationRepository,
	publisher EventPublisher,
) *PaymentService {
	return &PaymentService{
		orderRepo:        orderRepo,
		courseRepo:       courseRepo,
		enrollmentRepo:   enrollmentRepo,
		verificationRepo: verificationRepo,
		publisher:        publisher,
	}
}

// CreateOrder inserts a pending order for the course. Nothing stops a user
// from piling up several pending orders for the same course; only completion
// is unique.
func (s *PaymentService) CreateOrder(userID, courseID, paymentMethod string) (*models.Order, error) {
	order := &models.Order{
		UserID:        userID,
		CourseID:      courseID,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create pending order: %w", err)
	}
	return order, nil
}

// InitiateVerification generates a 6-digit verification code for the
// purchase and stores it with a ten-minute expiry. The code is returned to
// the caller; in production it would go out via SMS or email instead.
func (s *PaymentService) InitiateVerification(userID, courseID string) (string, error) {
	code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
	verification := &models.PaymentVerification{
		UserID:    userID,
		CourseID:  courseID,
		Code:      code,
		ExpiresAt: time.Now().Add(verificationTTL),
	}
	if err := s.verificationRepo.Create(verification); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}
	return code, nil
}

// CompleteOrder records a completed purchase. The only hard guarantee is
// that a completed order row exists when this returns nil: the enrollment
// counter, the enrollment record, and the broker event are each best-effort
// and only logged on failure. A second completion for the same (user,
// course) fails with ErrAlreadyPurchased, either at the pre-check or at the
// store constraint when two completions race.
func (s *PaymentService) CompleteOrder(userID, courseID, paymentMethod string, amount float64) (*models.Order, error) {
	purchased, err := s.orderRepo.HasCompleted(userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing purchase: %w", err)
	}
	if purchased {
		return nil, ErrAlreadyPurchased
	}

	order := &models.Order{
		UserID:        userID,
		CourseID:      courseID,
		PaymentMethod: paymentMethod,
		Amount:        amount,
		Status:        models.OrderStatusCompleted,
	}
	if err := s.orderRepo.Create(order); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCompletedOrder) {
			return nil, ErrAlreadyPurchased
		}
		return nil, fmt.Errorf("failed to create completed order: %w", err)
	}

	if err := s.courseRepo.IncrementEnrolled(courseID); err != nil {
		log.Printf("Warning: failed to increment enrollment counter for course %s: %v", courseID, err)
	}

	enrollment := &models.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		EnrollmentDate: time.Now(),
	}
	if err := s.enrollmentRepo.Upsert(enrollment); err != nil {
		log.Printf("Warning: failed to record enrollment for user %s, course %s: %v", userID, courseID, err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"orderID":  order.ID,
			"userID":   userID,
			"courseID": courseID,
			"amount":   amount,
		}
		if err := s.publisher.PublishEnrollmentCompleted(event); err != nil {
			log.Printf("Warning: failed to publish enrollment event for order %s: %v", order.ID, err)
		}
	} else {
		log.Println("Event publisher is not initialized. Skipping enrollment event.")
	}

	return order, nil
}

// GetOrderForUser retrieves an order detail scoped to its owner, with the
// final amount computed from the course price and discount.
func (s *PaymentService) GetOrderForUser(orderID, userID string) (*models.OrderDetail, error) {
	detail, err := s.orderRepo.GetDetailForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	finalPrice := detail.Price * (100 - detail.Discount) / 100
	detail.Amount = fmt.Sprintf("%.2f", finalPrice)
	return detail, nil
}
