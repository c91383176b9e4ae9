package stripe

import (
	domain "payments-service/internal/domain/payments"
)

// NormalizeIntentStatus maps a Stripe PaymentIntent status onto our payment
// status. The second return is false for intent states that have no local
// meaning (still collecting a payment method, mid-processing, and so on).
func NormalizeIntentStatus(s string) (domain.Status, bool) {
	switch s {
	case "succeeded":
		return domain.StatusCompleted, true
	case "canceled":
		return domain.StatusFailed, true
	case "requires_payment_method", "requires_confirmation", "requires_action", "processing", "requires_capture":
		return "", false
	default:
		return "", false
	}
}
