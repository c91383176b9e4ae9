package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "payments-service/internal/domain/payments"
)

// PaymentStore persists payments in Postgres through GORM. The conditional
// status write relies on the database matching both id and the expected
// current status in a single UPDATE, so two racing mutations can never both
// succeed.
type PaymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

func (s *PaymentStore) Insert(ctx context.Context, p *domain.Payment) error {
	err := s.db.WithContext(ctx).Create(p).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicate
	}
	return err
}

func (s *PaymentStore) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var p domain.Payment
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PaymentStore) GetByGatewayReference(ctx context.Context, reference string) (*domain.Payment, error) {
	var p domain.Payment
	err := s.db.WithContext(ctx).First(&p, "gateway_reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PaymentStore) List(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PaymentStore) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	res := s.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the record is gone or its status moved underneath us.
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&domain.Payment{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

func (s *PaymentStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&domain.Payment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
