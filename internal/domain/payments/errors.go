package payments

import (
	"errors"
	"fmt"
)

var (
	// Validation failures: the caller must correct the request.
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrInvalidMethod  = errors.New("unknown payment method")
	ErrUnknownService = errors.New("service does not exist")

	ErrNotFound  = errors.New("payment not found")
	ErrDuplicate = errors.New("payment already exists")

	// Illegal state machine moves. No mutation is performed.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotRefundable     = errors.New("payment is not in a refundable state")

	// ErrConflict means a concurrent mutation won the conditional write.
	// Transient: safe to retry after re-reading state.
	ErrConflict = errors.New("payment was modified concurrently")
)

// ErrReconciliationRequired means the gateway accepted a refund but the local
// status change lost the conditional write. The money moved and the record
// does not reflect it; an operator has to reconcile manually. Wraps
// ErrConflict so generic conflict handling still matches.
var ErrReconciliationRequired = fmt.Errorf("refund accepted by gateway but not recorded locally: %w", ErrConflict)

// GatewayError wraps any failure returned by the card gateway, including
// timeouts. Local state is never mutated on its behalf, so the whole
// operation is safe to retry.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsGatewayError reports whether err is (or wraps) a GatewayError.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
