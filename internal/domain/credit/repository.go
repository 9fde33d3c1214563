package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
)

// PurchaseFilter narrows purchase listings
type PurchaseFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	ShopID     *uuid.UUID
	Status     *PurchaseStatus
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	shared.Filter
	PurchaseID  *uuid.UUID
	CollectorID *uuid.UUID
	Status      *PaymentStatus
	From        *time.Time
	To          *time.Time
}

// PurchaseRepository is the persistence contract for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, businessID uuid.UUID, filter PurchaseFilter) ([]Purchase, int64, error)
	FindOverdue(ctx context.Context, businessID uuid.UUID, asOf time.Time) ([]Purchase, error)
	Save(ctx context.Context, purchase *Purchase) error
	Update(ctx context.Context, purchase *Purchase) error
}

// PaymentRepository is the persistence contract for payments
type PaymentRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, businessID uuid.UUID, filter PaymentFilter) ([]Payment, int64, error)
	Save(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
}
