package party

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
)

// Customer is a BNPL customer of a business
type Customer struct {
	shared.BusinessAggregateRoot
	Name             string     `gorm:"type:varchar(200);not null"`
	Phone            string     `gorm:"type:varchar(30);index"`
	GhanaCardNumber  string     `gorm:"type:varchar(30)"`
	Address          string     `gorm:"type:varchar(500)"`
	ShopID           *uuid.UUID `gorm:"type:uuid;index"`
	CreatedByStaffID *uuid.UUID `gorm:"type:uuid;index"`
	Active           bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer and raises CustomerCreated so sign-up
// incentives can fire for the registering staff member.
func NewCustomer(businessID uuid.UUID, name, phone string, shopID, createdBy *uuid.UUID) (*Customer, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	c := &Customer{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  name,
		Phone:                 phone,
		ShopID:                shopID,
		CreatedByStaffID:      createdBy,
		Active:                true,
	}

	c.AddDomainEvent(NewCustomerCreatedEvent(c))
	return c, nil
}

// Update edits the customer's profile fields
func (c *Customer) Update(name, phone, ghanaCard, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.GhanaCardNumber = ghanaCard
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Shop is a retail location belonging to a business
type Shop struct {
	shared.BusinessAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Location string `gorm:"type:varchar(500)"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates an active shop
func NewShop(businessID uuid.UUID, name, location string) (*Shop, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	return &Shop{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  name,
		Location:              location,
		Active:                true,
	}, nil
}
