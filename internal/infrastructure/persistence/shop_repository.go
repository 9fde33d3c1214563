package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormShopRepository implements ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by ID within a business
func (r *GormShopRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*party.Shop, error) {
	var shop party.Shop
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// FindAll finds all shops for a business
func (r *GormShopRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]party.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&party.Shop{}).
		Where("business_id = ?", businessID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shops []party.Shop
	if err := query.
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}

// Save persists a new shop
func (r *GormShopRepository) Save(ctx context.Context, shop *party.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

// Update persists changes to an existing shop
func (r *GormShopRepository) Update(ctx context.Context, shop *party.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}
