package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "payments-service/internal/domain/payments"
	"payments-service/internal/infra/observability"
)

// Service is the payment orchestrator: the only component that mutates
// Payment records. It keeps the gateway side effect and the local state
// change it authorizes inseparable, and serializes concurrent mutations of a
// record through the store's conditional write.
type Service struct {
	store    Store
	gateway  Gateway
	catalog  Catalog
	audit    AuditLogger
	logger   *zap.Logger
	metrics  *observability.Metrics
	currency string
}

func NewService(store Store, gateway Gateway, catalog Catalog, audit AuditLogger, logger *zap.Logger, metrics *observability.Metrics, currency string) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		gateway:  gateway,
		catalog:  catalog,
		audit:    audit,
		logger:   logger,
		metrics:  metrics,
		currency: currency,
	}
}

type CreateRequest struct {
	Amount      float64
	PaymentDate time.Time
	Method      domain.Method
	ServiceID   string
}

// Create validates the request, creates a charge intent for card payments,
// and persists the new record with status pending. Gateway failure aborts
// before anything is written, so no partial record is ever visible.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !req.Method.Valid() {
		return nil, domain.ErrInvalidMethod
	}

	svc, err := s.catalog.Resolve(ctx, req.ServiceID)
	if err != nil {
		s.logger.Error("catalog resolve failed", zap.String("service_id", req.ServiceID), zap.Error(err))
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrUnknownService
	}

	p := &domain.Payment{
		ID:          uuid.NewString(),
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		ServiceID:   req.ServiceID,
		Status:      domain.StatusPending,
	}

	if req.Method.RequiresGateway() {
		intent, err := s.gateway.CreateIntent(ctx, req.Amount, s.currency)
		if err != nil {
			s.logger.Warn("charge intent failed",
				zap.String("payment_id", p.ID),
				zap.Float64("amount", req.Amount),
				zap.Error(err))
			if s.metrics != nil {
				s.metrics.GatewayErrors.WithLabelValues("create_intent").Inc()
			}
			return nil, &domain.GatewayError{Op: "create_intent", Err: err}
		}
		ref := intent.Reference
		p.GatewayReference = &ref
	}

	if err := s.store.Insert(ctx, p); err != nil {
		s.logger.Error("insert payment failed", zap.String("payment_id", p.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment created",
		zap.String("payment_id", p.ID),
		zap.String("method", string(p.Method)),
		zap.Float64("amount", p.Amount))
	if s.metrics != nil {
		s.metrics.PaymentsCreated.WithLabelValues(string(p.Method)).Inc()
	}
	if s.audit != nil {
		s.audit.TryLog("payment_created", map[string]any{
			"payment_id": p.ID,
			"method":     string(p.Method),
			"amount":     p.Amount,
			"service_id": p.ServiceID,
		})
	}
	return p, nil
}

// UpdateStatus moves a payment along the generic edges of the transition
// table. Refunded is never reachable through here: refunds must go through
// Refund so a record can never claim to be refunded without the gateway
// having been asked.
//
// The commit is a conditional write keyed on the status read at the start.
// If a concurrent mutation wins, the read-decide-write cycle is retried once
// before giving up with ErrConflict.
func (s *Service) UpdateStatus(ctx context.Context, id string, target domain.Status) (*domain.Payment, error) {
	if !target.Valid() || target == domain.StatusRefunded {
		return nil, domain.ErrInvalidTransition
	}

	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !p.Status.CanTransitionTo(target) {
			return nil, domain.ErrInvalidTransition
		}

		err = s.store.UpdateStatus(ctx, id, p.Status, target)
		if errors.Is(err, domain.ErrConflict) {
			if s.metrics != nil {
				s.metrics.Conflicts.Inc()
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		from := p.Status
		p.Status = target
		s.logger.Info("payment status updated",
			zap.String("payment_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(target)))
		if s.metrics != nil {
			s.metrics.StatusUpdates.WithLabelValues(string(target)).Inc()
		}
		if s.audit != nil {
			s.audit.TryLog("payment_status_updated", map[string]any{
				"payment_id": id,
				"from":       string(from),
				"to":         string(target),
			})
		}
		return p, nil
	}
	return nil, domain.ErrConflict
}

// Refund refunds a completed payment. For card payments the gateway is asked
// first; only after it accepts is the local completed -> refunded transition
// committed. The commit is conditional on the status read in step one and is
// never retried: retrying could invoke the gateway's refund endpoint twice.
func (s *Service) Refund(ctx context.Context, id string) (*domain.Payment, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Refundable() {
		return nil, domain.ErrNotRefundable
	}

	refunded := false
	if p.Method.RequiresGateway() {
		if p.GatewayReference == nil {
			return nil, fmt.Errorf("card payment %s has no gateway reference", id)
		}
		receipt, err := s.gateway.Refund(ctx, *p.GatewayReference)
		if err != nil {
			s.logger.Warn("gateway refund failed",
				zap.String("payment_id", id),
				zap.Error(err))
			if s.metrics != nil {
				s.metrics.GatewayErrors.WithLabelValues("refund").Inc()
			}
			return nil, &domain.GatewayError{Op: "refund", Err: err}
		}
		refunded = true
		s.logger.Info("gateway refund accepted",
			zap.String("payment_id", id),
			zap.String("refund_id", receipt.RefundID))
	}

	if err := s.store.UpdateStatus(ctx, id, domain.StatusCompleted, domain.StatusRefunded); err != nil {
		if refunded {
			// Money moved at the gateway but the record did not follow.
			// Surface it loudly; an operator has to reconcile by hand.
			s.logger.Error("refund not recorded locally",
				zap.String("payment_id", id),
				zap.Error(err))
			if s.metrics != nil {
				s.metrics.ReconciliationGaps.Inc()
			}
			return nil, fmt.Errorf("%w (payment %s)", domain.ErrReconciliationRequired, id)
		}
		if errors.Is(err, domain.ErrConflict) && s.metrics != nil {
			s.metrics.Conflicts.Inc()
		}
		return nil, err
	}

	p.Status = domain.StatusRefunded
	s.logger.Info("payment refunded", zap.String("payment_id", id))
	if s.metrics != nil {
		s.metrics.Refunds.Inc()
	}
	if s.audit != nil {
		s.audit.TryLog("payment_refunded", map[string]any{
			"payment_id": id,
			"method":     string(p.Method),
			"amount":     p.Amount,
		})
	}
	return p, nil
}

// ApplyGatewayResult resolves a gateway reference reported by a webhook and
// moves the payment through the ordinary update path. Repeated or
// out-of-order notifications fall out as ErrInvalidTransition.
func (s *Service) ApplyGatewayResult(ctx context.Context, reference string, target domain.Status) (*domain.Payment, error) {
	p, err := s.store.GetByGatewayReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.UpdateStatus(ctx, p.ID, target)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Payment, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Payment, error) {
	return s.store.List(ctx)
}

// Delete removes a payment unconditionally, whatever its status.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("payment deleted", zap.String("payment_id", id))
	if s.audit != nil {
		s.audit.TryLog("payment_deleted", map[string]any{"payment_id": id})
	}
	return nil
}
