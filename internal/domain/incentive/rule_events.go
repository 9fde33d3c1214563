package incentive

import (
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type names for bonus rule lifecycle
const (
	EventTypeBonusRuleCreated     = "BonusRuleCreated"
	EventTypeBonusRuleUpdated     = "BonusRuleUpdated"
	EventTypeBonusRuleActivated   = "BonusRuleActivated"
	EventTypeBonusRuleDeactivated = "BonusRuleDeactivated"
)

// BonusRuleCreatedEvent is raised when a new bonus rule is configured
type BonusRuleCreatedEvent struct {
	shared.BaseDomainEvent
	Name        string          `json:"name"`
	Trigger     TriggerType     `json:"trigger"`
	TargetRole  StaffRole       `json:"target_role"`
	Calculation CalculationType `json:"calculation"`
	Value       decimal.Decimal `json:"value"`
}

// EventType returns the event type name
func (e *BonusRuleCreatedEvent) EventType() string {
	return EventTypeBonusRuleCreated
}

// NewBonusRuleCreatedEvent creates a new BonusRuleCreatedEvent
func NewBonusRuleCreatedEvent(r *BonusRule) *BonusRuleCreatedEvent {
	return &BonusRuleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusRuleCreated, "BonusRule", r.ID, r.BusinessID),
		Name:            r.Name,
		Trigger:         r.Trigger,
		TargetRole:      r.TargetRole,
		Calculation:     r.Calculation,
		Value:           r.Value,
	}
}

// BonusRuleUpdatedEvent is raised when a rule's policy is edited
type BonusRuleUpdatedEvent struct {
	shared.BaseDomainEvent
	Name    string      `json:"name"`
	Trigger TriggerType `json:"trigger"`
}

// EventType returns the event type name
func (e *BonusRuleUpdatedEvent) EventType() string {
	return EventTypeBonusRuleUpdated
}

// NewBonusRuleUpdatedEvent creates a new BonusRuleUpdatedEvent
func NewBonusRuleUpdatedEvent(r *BonusRule) *BonusRuleUpdatedEvent {
	return &BonusRuleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusRuleUpdated, "BonusRule", r.ID, r.BusinessID),
		Name:            r.Name,
		Trigger:         r.Trigger,
	}
}

// BonusRuleActivatedEvent is raised when a rule is re-enabled
type BonusRuleActivatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// EventType returns the event type name
func (e *BonusRuleActivatedEvent) EventType() string {
	return EventTypeBonusRuleActivated
}

// NewBonusRuleActivatedEvent creates a new BonusRuleActivatedEvent
func NewBonusRuleActivatedEvent(r *BonusRule) *BonusRuleActivatedEvent {
	return &BonusRuleActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusRuleActivated, "BonusRule", r.ID, r.BusinessID),
		Name:            r.Name,
	}
}

// BonusRuleDeactivatedEvent is raised when a rule is disabled or soft-deleted
type BonusRuleDeactivatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// EventType returns the event type name
func (e *BonusRuleDeactivatedEvent) EventType() string {
	return EventTypeBonusRuleDeactivated
}

// NewBonusRuleDeactivatedEvent creates a new BonusRuleDeactivatedEvent
func NewBonusRuleDeactivatedEvent(r *BonusRule) *BonusRuleDeactivatedEvent {
	return &BonusRuleDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusRuleDeactivated, "BonusRule", r.ID, r.BusinessID),
		Name:            r.Name,
	}
}
