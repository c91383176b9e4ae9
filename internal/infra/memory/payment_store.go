package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "payments-service/internal/domain/payments"
)

// PaymentStore keeps payments in an in-process map. It honours the same
// conditional-write contract as the Postgres store and backs tests and local
// runs without a database.
type PaymentStore struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{payments: make(map[string]domain.Payment)}
}

func (s *PaymentStore) Insert(ctx context.Context, p *domain.Payment) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payments[p.ID]; exists {
		return domain.ErrDuplicate
	}
	// GORM stamps these on the Postgres path; mirror it so List ordering
	// holds for records created here.
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	s.payments[p.ID] = *p
	return nil
}

func (s *PaymentStore) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *PaymentStore) GetByGatewayReference(ctx context.Context, reference string) (*domain.Payment, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payments {
		if p.GatewayReference != nil && *p.GatewayReference == reference {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *PaymentStore) List(ctx context.Context) ([]domain.Payment, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *PaymentStore) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Status != from {
		return domain.ErrConflict
	}
	p.Status = to
	s.payments[id] = p
	return nil
}

func (s *PaymentStore) Delete(ctx context.Context, id string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.payments, id)
	return nil
}
