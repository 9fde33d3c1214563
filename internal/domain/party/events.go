package party

import (
	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
)

// Event type names for the party context
const (
	EventTypeCustomerCreated = "CustomerCreated"
)

// CustomerCreatedEvent is raised when a customer is registered
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID       uuid.UUID  `json:"customer_id"`
	CustomerName     string     `json:"customer_name"`
	ShopID           *uuid.UUID `json:"shop_id,omitempty"`
	CreatedByStaffID *uuid.UUID `json:"created_by_staff_id,omitempty"`
}

// EventType returns the event type name
func (e *CustomerCreatedEvent) EventType() string {
	return EventTypeCustomerCreated
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCustomerCreated, "Customer", c.ID, c.BusinessID),
		CustomerID:       c.ID,
		CustomerName:     c.Name,
		ShopID:           c.ShopID,
		CreatedByStaffID: c.CreatedByStaffID,
	}
}
