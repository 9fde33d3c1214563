package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type names for the credit context
const (
	EventTypePurchaseCreated   = "PurchaseCreated"
	EventTypePurchaseSettled   = "PurchaseSettled"
	EventTypePurchaseDefaulted = "PurchaseDefaulted"
	EventTypePaymentConfirmed  = "PaymentConfirmed"
)

// PurchaseCreatedEvent is raised when a BNPL sale is booked
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseID    uuid.UUID       `json:"purchase_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	ShopID        *uuid.UUID      `json:"shop_id,omitempty"`
	SoldByStaffID *uuid.UUID      `json:"sold_by_staff_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// EventType returns the event type name
func (e *PurchaseCreatedEvent) EventType() string {
	return EventTypePurchaseCreated
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseCreated, "Purchase", p.ID, p.BusinessID),
		PurchaseID:      p.ID,
		CustomerID:      p.CustomerID,
		ShopID:          p.ShopID,
		SoldByStaffID:   p.SoldByStaffID,
		TotalAmount:     p.TotalAmount,
	}
}

// PurchaseSettledEvent is raised when the final installment clears the balance
type PurchaseSettledEvent struct {
	shared.BaseDomainEvent
	PurchaseID          uuid.UUID  `json:"purchase_id"`
	CustomerID          uuid.UUID  `json:"customer_id"`
	ShopID              *uuid.UUID `json:"shop_id,omitempty"`
	AssignedCollectorID *uuid.UUID `json:"assigned_collector_id,omitempty"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	SettledAt           time.Time  `json:"settled_at"`
}

// EventType returns the event type name
func (e *PurchaseSettledEvent) EventType() string {
	return EventTypePurchaseSettled
}

// NewPurchaseSettledEvent creates a new PurchaseSettledEvent
func NewPurchaseSettledEvent(p *Purchase) *PurchaseSettledEvent {
	settledAt := time.Now()
	if p.SettledAt != nil {
		settledAt = *p.SettledAt
	}
	return &PurchaseSettledEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypePurchaseSettled, "Purchase", p.ID, p.BusinessID),
		PurchaseID:          p.ID,
		CustomerID:          p.CustomerID,
		ShopID:              p.ShopID,
		AssignedCollectorID: p.AssignedCollectorID,
		TotalAmount:         p.TotalAmount,
		SettledAt:           settledAt,
	}
}

// PurchaseDefaultedEvent is raised when a purchase lapses into default
type PurchaseDefaultedEvent struct {
	shared.BaseDomainEvent
	PurchaseID  uuid.UUID       `json:"purchase_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ShopID      *uuid.UUID      `json:"shop_id,omitempty"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// EventType returns the event type name
func (e *PurchaseDefaultedEvent) EventType() string {
	return EventTypePurchaseDefaulted
}

// NewPurchaseDefaultedEvent creates a new PurchaseDefaultedEvent
func NewPurchaseDefaultedEvent(p *Purchase) *PurchaseDefaultedEvent {
	return &PurchaseDefaultedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseDefaulted, "Purchase", p.ID, p.BusinessID),
		PurchaseID:      p.ID,
		CustomerID:      p.CustomerID,
		ShopID:          p.ShopID,
		Outstanding:     p.Outstanding(),
	}
}

// PaymentConfirmedEvent is raised when a manager verifies a collected
// installment. OnTime and Recovered drive which incentive triggers fire.
type PaymentConfirmedEvent struct {
	shared.BaseDomainEvent
	PaymentID   uuid.UUID       `json:"payment_id"`
	PurchaseID  uuid.UUID       `json:"purchase_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	ShopID      *uuid.UUID      `json:"shop_id,omitempty"`
	CollectorID *uuid.UUID      `json:"collector_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
	OnTime      bool            `json:"on_time"`
	Recovered   bool            `json:"recovered"`
	CollectedAt time.Time       `json:"collected_at"`
}

// EventType returns the event type name
func (e *PaymentConfirmedEvent) EventType() string {
	return EventTypePaymentConfirmed
}

// NewPaymentConfirmedEvent creates a new PaymentConfirmedEvent
func NewPaymentConfirmedEvent(p *Payment) *PaymentConfirmedEvent {
	return &PaymentConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentConfirmed, "Payment", p.ID, p.BusinessID),
		PaymentID:       p.ID,
		PurchaseID:      p.PurchaseID,
		CustomerID:      p.CustomerID,
		ShopID:          p.ShopID,
		CollectorID:     p.CollectorID,
		Amount:          p.Amount,
		Reference:       p.Reference,
		OnTime:          p.OnTime(),
		Recovered:       p.WasRecovery,
		CollectedAt:     p.CollectedAt,
	}
}
