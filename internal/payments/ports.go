package payments

import (
	"context"

	domain "payments-service/internal/domain/payments"
)

// Store is the durable home of Payment records. UpdateStatus is a conditional
// write: it only succeeds when the record still carries the from status, and
// reports domain.ErrConflict otherwise.
type Store interface {
	Insert(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByGatewayReference(ctx context.Context, reference string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) error
	Delete(ctx context.Context, id string) error
}

// ChargeIntent is the gateway's answer to a charge request. Reference is what
// a later refund must present.
type ChargeIntent struct {
	Reference    string
	ClientSecret string
}

// RefundReceipt acknowledges a refund issued at the gateway.
type RefundReceipt struct {
	RefundID string
}

// Gateway is the card-payment gateway boundary. Implementations must bound
// every call with a timeout; the orchestrator treats any error, timeouts
// included, as a gateway failure that leaves local state untouched.
type Gateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (*ChargeIntent, error)
	Refund(ctx context.Context, reference string) (*RefundReceipt, error)
}

// ServiceRecord is the catalog's view of a bookable service.
type ServiceRecord struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog resolves service identifiers against the external service catalog.
// A nil record with a nil error means the service does not exist.
type Catalog interface {
	Resolve(ctx context.Context, serviceID string) (*ServiceRecord, error)
}

// AuditLogger is best-effort: TryLog must never block and its failures are
// discarded.
type AuditLogger interface {
	TryLog(event string, fields map[string]any)
}
