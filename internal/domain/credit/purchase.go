package credit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/paylater/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PurchaseStatus is the repayment state of a BNPL purchase
type PurchaseStatus string

const (
	PurchaseActive    PurchaseStatus = "ACTIVE"
	PurchaseSettled   PurchaseStatus = "SETTLED"
	PurchaseDefaulted PurchaseStatus = "DEFAULTED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
)

// IsValid returns true if the status is a known value
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseActive, PurchaseSettled, PurchaseDefaulted, PurchaseCancelled:
		return true
	}
	return false
}

// Purchase is a BNPL sale paid off in installments. The assigned collector
// follows up on repayment; the selling staff member earns sale incentives.
type Purchase struct {
	shared.BusinessAggregateRoot
	PurchaseNumber      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchases_business_number,priority:2"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName        string          `gorm:"type:varchar(200);not null"` // denormalized for display
	ShopID              *uuid.UUID      `gorm:"type:uuid;index"`
	SoldByStaffID       *uuid.UUID      `gorm:"type:uuid;index"`
	AssignedCollectorID *uuid.UUID      `gorm:"type:uuid;index"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status              PurchaseStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	NextDueDate         *time.Time      `gorm:"index"`
	// DefaultedAt records when the purchase last entered default. It is kept
	// after recovery so period metrics can count the transition.
	DefaultedAt *time.Time
	SettledAt   *time.Time
	Remark              string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates an active purchase and raises PurchaseCreated
func NewPurchase(
	businessID uuid.UUID,
	purchaseNumber string,
	customerID uuid.UUID,
	customerName string,
	shopID, soldBy, collector *uuid.UUID,
	total valueobject.Money,
	nextDue *time.Time,
) (*Purchase, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Purchase total must be positive")
	}

	p := &Purchase{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		PurchaseNumber:        purchaseNumber,
		CustomerID:            customerID,
		CustomerName:          customerName,
		ShopID:                shopID,
		SoldByStaffID:         soldBy,
		AssignedCollectorID:   collector,
		TotalAmount:           total.Amount(),
		PaidAmount:            decimal.Zero,
		Status:                PurchaseActive,
		NextDueDate:           nextDue,
	}

	p.AddDomainEvent(NewPurchaseCreatedEvent(p))
	return p, nil
}

// Outstanding returns the unpaid balance
func (p *Purchase) Outstanding() decimal.Decimal {
	return p.TotalAmount.Sub(p.PaidAmount)
}

// ApplyPayment books a confirmed payment against the balance. A previously
// defaulted purchase returns to active; full repayment settles the purchase
// and raises PurchaseSettled. Returns true when the payment settled it.
func (p *Purchase) ApplyPayment(amount decimal.Decimal, nextDue *time.Time) (bool, error) {
	if p.Status == PurchaseSettled || p.Status == PurchaseCancelled {
		return false, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply payment to %s purchase", p.Status))
	}
	if !amount.IsPositive() {
		return false, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	p.PaidAmount = p.PaidAmount.Add(amount)
	if p.Status == PurchaseDefaulted {
		// DefaultedAt stays set: the default still happened in its period.
		p.Status = PurchaseActive
	}
	p.NextDueDate = nextDue
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if p.PaidAmount.GreaterThanOrEqual(p.TotalAmount) {
		now := time.Now()
		p.Status = PurchaseSettled
		p.SettledAt = &now
		p.AddDomainEvent(NewPurchaseSettledEvent(p))
		return true, nil
	}
	return false, nil
}

// MarkDefaulted flags an active purchase whose installments have lapsed
func (p *Purchase) MarkDefaulted() error {
	if p.Status != PurchaseActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot default %s purchase", p.Status))
	}
	now := time.Now()
	p.Status = PurchaseDefaulted
	p.DefaultedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseDefaultedEvent(p))
	return nil
}
