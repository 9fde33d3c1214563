package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/credit"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by ID within a business
func (r *GormPaymentRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*credit.Payment, error) {
	var payment credit.Payment
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter credit.PaymentFilter) ([]credit.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&credit.Payment{}).
		Where("business_id = ?", businessID)

	if filter.PurchaseID != nil {
		query = query.Where("purchase_id = ?", *filter.PurchaseID)
	}
	if filter.CollectorID != nil {
		query = query.Where("collector_id = ?", *filter.CollectorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("collected_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("collected_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []credit.Payment
	if err := query.
		Order("collected_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Save persists a new payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *credit.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// Update persists changes to an existing payment
func (r *GormPaymentRepository) Update(ctx context.Context, payment *credit.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}
