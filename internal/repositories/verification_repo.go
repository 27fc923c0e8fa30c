package repositories

import "kursus/internal/models"

// VerificationRepository defines the interface for payment verification
// records. Codes are written when a payment is initiated; the completion
// flow never reads them back (see DESIGN.md).
type VerificationRepository interface {
	Create(verification *models.PaymentVerification) error
}
