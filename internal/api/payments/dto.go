package payments

import (
	"time"

	domain "payments-service/internal/domain/payments"
)

type CreatePaymentRequest struct {
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	PaymentDate time.Time `json:"payment_date" binding:"required"`
	Method      string    `json:"method" binding:"required"`
	ServiceID   string    `json:"service_id" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentConfirmation is what a successful creation returns. The gateway
// reference deliberately has no place here.
type PaymentConfirmation struct {
	PaymentID   string    `json:"payment_id"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	PaymentDate time.Time `json:"payment_date"`
}

func toConfirmation(p *domain.Payment) PaymentConfirmation {
	return PaymentConfirmation{
		PaymentID:   p.ID,
		Amount:      p.Amount,
		Status:      string(p.Status),
		Method:      string(p.Method),
		PaymentDate: p.PaymentDate,
	}
}
