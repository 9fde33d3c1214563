package incentive

import (
	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type names for bonus record lifecycle
const (
	EventTypeBonusAwarded  = "BonusAwarded"
	EventTypeBonusApproved = "BonusApproved"
	EventTypeBonusPaid     = "BonusPaid"
	EventTypeBonusRejected = "BonusRejected"
)

// BonusAwardedEvent is raised when a PENDING bonus record is created
type BonusAwardedEvent struct {
	shared.BaseDomainEvent
	RuleID        uuid.UUID       `json:"rule_id"`
	StaffMemberID uuid.UUID       `json:"staff_member_id"`
	Trigger       TriggerType     `json:"trigger"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	AwardedAmount decimal.Decimal `json:"awarded_amount"`
}

// EventType returns the event type name
func (e *BonusAwardedEvent) EventType() string {
	return EventTypeBonusAwarded
}

// NewBonusAwardedEvent creates a new BonusAwardedEvent
func NewBonusAwardedEvent(r *BonusRecord) *BonusAwardedEvent {
	return &BonusAwardedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusAwarded, "BonusRecord", r.ID, r.BusinessID),
		RuleID:          r.RuleID,
		StaffMemberID:   r.StaffMemberID,
		Trigger:         r.Trigger,
		BaseAmount:      r.BaseAmount,
		AwardedAmount:   r.AwardedAmount,
	}
}

// BonusApprovedEvent is raised when a record is approved
type BonusApprovedEvent struct {
	shared.BaseDomainEvent
	StaffMemberID uuid.UUID       `json:"staff_member_id"`
	AwardedAmount decimal.Decimal `json:"awarded_amount"`
	ApprovedBy    uuid.UUID       `json:"approved_by"`
}

// EventType returns the event type name
func (e *BonusApprovedEvent) EventType() string {
	return EventTypeBonusApproved
}

// NewBonusApprovedEvent creates a new BonusApprovedEvent
func NewBonusApprovedEvent(r *BonusRecord) *BonusApprovedEvent {
	var approvedBy uuid.UUID
	if r.ApprovedBy != nil {
		approvedBy = *r.ApprovedBy
	}
	return &BonusApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusApproved, "BonusRecord", r.ID, r.BusinessID),
		StaffMemberID:   r.StaffMemberID,
		AwardedAmount:   r.AwardedAmount,
		ApprovedBy:      approvedBy,
	}
}

// BonusPaidEvent is raised when a record is marked paid
type BonusPaidEvent struct {
	shared.BaseDomainEvent
	StaffMemberID    uuid.UUID       `json:"staff_member_id"`
	AwardedAmount    decimal.Decimal `json:"awarded_amount"`
	PaidBy           uuid.UUID       `json:"paid_by"`
	PaymentReference string          `json:"payment_reference,omitempty"`
}

// EventType returns the event type name
func (e *BonusPaidEvent) EventType() string {
	return EventTypeBonusPaid
}

// NewBonusPaidEvent creates a new BonusPaidEvent
func NewBonusPaidEvent(r *BonusRecord) *BonusPaidEvent {
	var paidBy uuid.UUID
	if r.PaidBy != nil {
		paidBy = *r.PaidBy
	}
	return &BonusPaidEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeBonusPaid, "BonusRecord", r.ID, r.BusinessID),
		StaffMemberID:    r.StaffMemberID,
		AwardedAmount:    r.AwardedAmount,
		PaidBy:           paidBy,
		PaymentReference: r.PaymentReference,
	}
}

// BonusRejectedEvent is raised when a record is rejected
type BonusRejectedEvent struct {
	shared.BaseDomainEvent
	StaffMemberID uuid.UUID `json:"staff_member_id"`
	RejectedBy    uuid.UUID `json:"rejected_by"`
	Reason        string    `json:"reason,omitempty"`
}

// EventType returns the event type name
func (e *BonusRejectedEvent) EventType() string {
	return EventTypeBonusRejected
}

// NewBonusRejectedEvent creates a new BonusRejectedEvent
func NewBonusRejectedEvent(r *BonusRecord) *BonusRejectedEvent {
	var rejectedBy uuid.UUID
	if r.RejectedBy != nil {
		rejectedBy = *r.RejectedBy
	}
	return &BonusRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusRejected, "BonusRecord", r.ID, r.BusinessID),
		StaffMemberID:   r.StaffMemberID,
		RejectedBy:      rejectedBy,
		Reason:          r.Notes,
	}
}
