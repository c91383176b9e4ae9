package payments

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	domain "payments-service/internal/domain/payments"
)

type StoreMock struct {
	mock.Mock
	Store
}

func (m *StoreMock) Insert(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *StoreMock) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *StoreMock) GetByGatewayReference(ctx context.Context, reference string) (*domain.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *StoreMock) List(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *StoreMock) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *StoreMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type GatewayMock struct {
	mock.Mock
	Gateway
}

func (m *GatewayMock) CreateIntent(ctx context.Context, amount float64, currency string) (*ChargeIntent, error) {
	args := m.Called(ctx, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChargeIntent), args.Error(1)
}

func (m *GatewayMock) Refund(ctx context.Context, reference string) (*RefundReceipt, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RefundReceipt), args.Error(1)
}

type CatalogMock struct {
	mock.Mock
	Catalog
}

func (m *CatalogMock) Resolve(ctx context.Context, serviceID string) (*ServiceRecord, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ServiceRecord), args.Error(1)
}

// AuditRecorder collects events synchronously so tests can assert on them.
type AuditRecorder struct {
	mu     sync.Mutex
	Events []string
}

func (a *AuditRecorder) TryLog(event string, fields map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Events = append(a.Events, event)
}
