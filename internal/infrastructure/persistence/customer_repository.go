package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID within a business
func (r *GormCustomerRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*party.Customer, error) {
	var customer party.Customer
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds all customers for a business. Search matches name or phone.
func (r *GormCustomerRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]party.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&party.Customer{}).
		Where("business_id = ?", businessID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []party.Customer
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// Save persists a new customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *party.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update persists changes to an existing customer
func (r *GormCustomerRepository) Update(ctx context.Context, customer *party.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		Delete(&party.Customer{}).Error
}
