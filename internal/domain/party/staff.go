package party

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/shared"
)

// StaffMember is an employee of a business: a collector, seller, manager or
// cashier. Staff may be attached to one shop or float across the business.
type StaffMember struct {
	shared.BusinessAggregateRoot
	UserID *uuid.UUID          `gorm:"type:uuid;index"` // optional login account
	Name   string              `gorm:"type:varchar(200);not null"`
	Phone  string              `gorm:"type:varchar(30)"`
	Role   incentive.StaffRole `gorm:"type:varchar(30);not null;index"`
	ShopID *uuid.UUID          `gorm:"type:uuid;index"`
	Active bool                `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (StaffMember) TableName() string {
	return "staff_members"
}

// NewStaffMember creates an active staff member
func NewStaffMember(businessID uuid.UUID, name string, role incentive.StaffRole, shopID *uuid.UUID) (*StaffMember, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Staff role is not valid")
	}

	return &StaffMember{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  name,
		Role:                  role,
		ShopID:                shopID,
		Active:                true,
	}, nil
}

// Update edits the staff member's profile fields
func (s *StaffMember) Update(name string, role incentive.StaffRole, shopID *uuid.UUID) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Staff role is not valid")
	}
	s.Name = name
	s.Role = role
	s.ShopID = shopID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetActive toggles employment status
func (s *StaffMember) SetActive(active bool) {
	if s.Active == active {
		return
	}
	s.Active = active
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Info projects the staff member into the incentive engine's read shape
func (s *StaffMember) Info() incentive.StaffInfo {
	return incentive.StaffInfo{
		ID:     s.ID,
		UserID: s.UserID,
		Name:   s.Name,
		Role:   s.Role,
		ShopID: s.ShopID,
		Active: s.Active,
	}
}
