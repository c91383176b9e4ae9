package payments

import (
	"time"
)

// Payment is the single entity this service owns. Everything except Status is
// immutable after creation; Status only moves along the edges the transition
// table allows.
type Payment struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	PaymentDate time.Time `gorm:"not null" json:"payment_date"`
	Method      Method    `gorm:"type:varchar(32);not null" json:"method"`
	ServiceID   string    `gorm:"type:varchar(64);not null;index" json:"service_id"`
	Status      Status    `gorm:"type:varchar(16);not null;index" json:"status"`

	// GatewayReference is set exactly once, from the charge intent created at
	// AddPayment time, and only for card payments. It is needed to issue a
	// refund and must never leave the service.
	GatewayReference *string `gorm:"type:varchar(128)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

// Refundable reports whether a refund may be attempted for this payment.
func (p *Payment) Refundable() bool {
	return p.Status == StatusCompleted
}
