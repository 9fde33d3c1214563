package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/credit"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by ID within a business
func (r *GormPurchaseRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*credit.Purchase, error) {
	var purchase credit.Purchase
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter credit.PurchaseFilter) ([]credit.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&credit.Purchase{}).
		Where("business_id = ?", businessID)

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ShopID != nil {
		query = query.Where("shop_id = ?", *filter.ShopID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("purchase_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchases []credit.Purchase
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// FindOverdue returns active purchases whose next due date has passed
func (r *GormPurchaseRepository) FindOverdue(ctx context.Context, businessID uuid.UUID, asOf time.Time) ([]credit.Purchase, error) {
	var purchases []credit.Purchase
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND status = ? AND next_due_date IS NOT NULL AND next_due_date < ?",
			businessID, credit.PurchaseActive, asOf).
		Order("next_due_date ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save persists a new purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *credit.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// Update persists changes to an existing purchase
func (r *GormPurchaseRepository) Update(ctx context.Context, purchase *credit.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}
