package party

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/party"
)

// ==================== Staff DTOs ====================

// CreateStaffMemberRequest represents a request to register a staff member
type CreateStaffMemberRequest struct {
	Name   string     `json:"name" binding:"required,min=1,max=200"`
	Phone  string     `json:"phone" binding:"max=30"`
	Role   string     `json:"role" binding:"required"`
	ShopID *uuid.UUID `json:"shop_id"`
	UserID *uuid.UUID `json:"user_id"`
}

// UpdateStaffMemberRequest represents a request to update a staff member
type UpdateStaffMemberRequest struct {
	Name   string     `json:"name" binding:"required,min=1,max=200"`
	Phone  string     `json:"phone" binding:"max=30"`
	Role   string     `json:"role" binding:"required"`
	ShopID *uuid.UUID `json:"shop_id"`
}

// StaffMemberResponse represents a staff member in API responses
type StaffMemberResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	ShopID    *uuid.UUID `json:"shop_id,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToStaffMemberResponse converts a domain staff member to its response shape
func ToStaffMemberResponse(s *party.StaffMember) StaffMemberResponse {
	return StaffMemberResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Phone:     s.Phone,
		Role:      string(s.Role),
		ShopID:    s.ShopID,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

// ==================== Customer DTOs ====================

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	Name             string     `json:"name" binding:"required,min=1,max=200"`
	Phone            string     `json:"phone" binding:"max=30"`
	GhanaCardNumber  string     `json:"ghana_card_number" binding:"max=30"`
	Address          string     `json:"address" binding:"max=500"`
	ShopID           *uuid.UUID `json:"shop_id"`
	CreatedByStaffID *uuid.UUID `json:"created_by_staff_id"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Phone           string `json:"phone" binding:"max=30"`
	GhanaCardNumber string `json:"ghana_card_number" binding:"max=30"`
	Address         string `json:"address" binding:"max=500"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone,omitempty"`
	GhanaCardNumber  string     `json:"ghana_card_number,omitempty"`
	Address          string     `json:"address,omitempty"`
	ShopID           *uuid.UUID `json:"shop_id,omitempty"`
	CreatedByStaffID *uuid.UUID `json:"created_by_staff_id,omitempty"`
	Active           bool       `json:"active"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToCustomerResponse converts a domain customer to its response shape
func ToCustomerResponse(c *party.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		GhanaCardNumber:  c.GhanaCardNumber,
		Address:          c.Address,
		ShopID:           c.ShopID,
		CreatedByStaffID: c.CreatedByStaffID,
		Active:           c.Active,
		CreatedAt:        c.CreatedAt,
	}
}

// ==================== Shop DTOs ====================

// CreateShopRequest represents a request to open a shop
type CreateShopRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Location string `json:"location" binding:"max=500"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToShopResponse converts a domain shop to its response shape
func ToShopResponse(s *party.Shop) ShopResponse {
	return ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}
