package credit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/paylater/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the confirmation state of an installment payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentVoided    PaymentStatus = "VOIDED"
)

// IsValid returns true if the status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentConfirmed, PaymentVoided:
		return true
	}
	return false
}

// Payment records a single installment collected against a purchase. It stays
// pending until a manager confirms it; only confirmed payments move the
// purchase balance or earn collection incentives.
type Payment struct {
	shared.BusinessAggregateRoot
	PurchaseID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopID        *uuid.UUID      `gorm:"type:uuid;index"`
	CollectorID   *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'GHS'"`
	Method        string          `gorm:"type:varchar(30);not null;default:'CASH'"`
	Reference     string          `gorm:"type:varchar(100)"`
	DueDate       *time.Time      `gorm:"index"`
	CollectedAt   time.Time       `gorm:"not null"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ConfirmedAt   *time.Time
	ConfirmedBy   *uuid.UUID `gorm:"type:uuid"`
	WasRecovery   bool       `gorm:"not null;default:false"`
	Remark        string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment records a collected installment awaiting confirmation.
// wasRecovery marks a payment taken against a defaulted purchase.
func NewPayment(
	businessID uuid.UUID,
	purchaseID, customerID uuid.UUID,
	shopID, collectorID *uuid.UUID,
	amount valueobject.Money,
	method, reference string,
	dueDate *time.Time,
	collectedAt time.Time,
	wasRecovery bool,
) (*Payment, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if method == "" {
		method = "CASH"
	}
	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	return &Payment{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		PurchaseID:            purchaseID,
		CustomerID:            customerID,
		ShopID:                shopID,
		CollectorID:           collectorID,
		Amount:                amount.Amount(),
		Currency:              string(amount.Currency()),
		Method:                method,
		Reference:             reference,
		DueDate:               dueDate,
		CollectedAt:           collectedAt,
		Status:                PaymentPending,
		WasRecovery:           wasRecovery,
	}, nil
}

// OnTime reports whether the payment landed on or before its due date.
// A payment with no due date counts as on time.
func (p *Payment) OnTime() bool {
	if p.DueDate == nil {
		return true
	}
	return !p.CollectedAt.After(*p.DueDate)
}

// Confirm marks the payment as verified and raises PaymentConfirmed,
// the trigger for collection incentives
func (p *Payment) Confirm(confirmedBy uuid.UUID) error {
	if p.Status != PaymentPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm %s payment", p.Status))
	}
	now := time.Now()
	p.Status = PaymentConfirmed
	p.ConfirmedAt = &now
	p.ConfirmedBy = &confirmedBy
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentConfirmedEvent(p))
	return nil
}

// Void cancels a pending payment that was recorded in error
func (p *Payment) Void() error {
	if p.Status != PaymentPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void %s payment", p.Status))
	}
	p.Status = PaymentVoided
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
