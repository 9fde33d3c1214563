package party

import (
	"context"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/shared"
)

// StaffMemberRepository is the persistence contract for staff members
type StaffMemberRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*StaffMember, error)
	FindAll(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]StaffMember, int64, error)
	FindActiveByRole(ctx context.Context, businessID uuid.UUID, role incentive.StaffRole, shopID *uuid.UUID) ([]StaffMember, error)
	Save(ctx context.Context, staff *StaffMember) error
	Update(ctx context.Context, staff *StaffMember) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

// CustomerRepository is the persistence contract for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Customer, int64, error)
	Save(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

// ShopRepository is the persistence contract for shops
type ShopRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*Shop, error)
	FindAll(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Shop, int64, error)
	Save(ctx context.Context, shop *Shop) error
	Update(ctx context.Context, shop *Shop) error
}
