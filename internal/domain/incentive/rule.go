package incentive

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BonusRule is a configured incentive policy. A rule with a nil ShopID
// applies to every shop in the business; otherwise only to that shop.
type BonusRule struct {
	shared.BusinessAggregateRoot
	Name             string            `gorm:"type:varchar(200);not null"`
	ShopID           *uuid.UUID        `gorm:"type:uuid;index"`
	TargetRole       StaffRole         `gorm:"type:varchar(30);not null;index"`
	Trigger          TriggerType       `gorm:"type:varchar(30);not null;index"`
	Calculation      CalculationType   `gorm:"type:varchar(20);not null"`
	Value            decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	MinimumThreshold *decimal.Decimal  `gorm:"type:decimal(18,4)"`
	MaximumCap       *decimal.Decimal  `gorm:"type:decimal(18,4)"`
	TargetAmount     *decimal.Decimal  `gorm:"type:decimal(18,4)"`
	Tiers            string            `gorm:"type:text"` // JSON tier schedule, empty when flat
	Period           PeriodGranularity `gorm:"type:varchar(20);not null"`
	Active           bool              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BonusRule) TableName() string {
	return "bonus_rules"
}

// BonusRuleParams carries the admin-editable fields of a rule
type BonusRuleParams struct {
	Name             string
	ShopID           *uuid.UUID
	TargetRole       StaffRole
	Trigger          TriggerType
	Calculation      CalculationType
	Value            decimal.Decimal
	MinimumThreshold *decimal.Decimal
	MaximumCap       *decimal.Decimal
	TargetAmount     *decimal.Decimal
	Tiers            string
	Period           PeriodGranularity
}

func (p BonusRuleParams) validate() error {
	if p.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Rule name cannot be empty")
	}
	if !p.TargetRole.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Target role is not valid")
	}
	if !p.Trigger.IsValid() {
		return shared.NewDomainError("INVALID_TRIGGER", "Trigger type is not valid")
	}
	if !p.Calculation.IsValid() {
		return shared.NewDomainError("INVALID_CALCULATION", "Calculation type is not valid")
	}
	if !p.Period.IsValid() {
		return shared.NewDomainError("INVALID_PERIOD", "Period granularity is not valid")
	}
	if !p.Value.IsPositive() {
		return shared.NewDomainError("INVALID_VALUE", "Value must be greater than zero")
	}
	if p.MinimumThreshold != nil && p.MinimumThreshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum threshold cannot be negative")
	}
	if p.MaximumCap != nil && !p.MaximumCap.IsPositive() {
		return shared.NewDomainError("INVALID_CAP", "Maximum cap must be greater than zero")
	}
	if p.Trigger == TriggerTargetHit || p.Trigger == TriggerShopPerformance {
		if p.TargetAmount == nil || !p.TargetAmount.IsPositive() {
			return shared.NewDomainError("INVALID_TARGET", "Target amount must be greater than zero for target rules")
		}
	}
	if p.Trigger == TriggerZeroDefault && p.Calculation == CalculationPercentage {
		return shared.NewDomainError("INVALID_CALCULATION", "Zero-default rules must use a fixed amount")
	}
	if _, err := ParseTierSchedule(p.Tiers); err != nil {
		return err
	}
	return nil
}

// NewBonusRule creates a new active bonus rule after validating its policy
func NewBonusRule(businessID uuid.UUID, params BonusRuleParams) (*BonusRule, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	rule := &BonusRule{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  params.Name,
		ShopID:                params.ShopID,
		TargetRole:            params.TargetRole,
		Trigger:               params.Trigger,
		Calculation:           params.Calculation,
		Value:                 params.Value,
		MinimumThreshold:      params.MinimumThreshold,
		MaximumCap:            params.MaximumCap,
		TargetAmount:          params.TargetAmount,
		Tiers:                 params.Tiers,
		Period:                params.Period,
		Active:                true,
	}

	rule.AddDomainEvent(NewBonusRuleCreatedEvent(rule))
	return rule, nil
}

// Update replaces the rule's policy fields after validation
func (r *BonusRule) Update(params BonusRuleParams) error {
	if err := params.validate(); err != nil {
		return err
	}

	r.Name = params.Name
	r.ShopID = params.ShopID
	r.TargetRole = params.TargetRole
	r.Trigger = params.Trigger
	r.Calculation = params.Calculation
	r.Value = params.Value
	r.MinimumThreshold = params.MinimumThreshold
	r.MaximumCap = params.MaximumCap
	r.TargetAmount = params.TargetAmount
	r.Tiers = params.Tiers
	r.Period = params.Period
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewBonusRuleUpdatedEvent(r))
	return nil
}

// SetActive toggles the rule's active flag
func (r *BonusRule) SetActive(active bool) {
	if r.Active == active {
		return
	}
	r.Active = active
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	if active {
		r.AddDomainEvent(NewBonusRuleActivatedEvent(r))
	} else {
		r.AddDomainEvent(NewBonusRuleDeactivatedEvent(r))
	}
}

// IsTargetBased returns true if this rule is evaluated by the batch path
func (r *BonusRule) IsTargetBased() bool {
	return r.Trigger.IsTargetBased()
}

// Matches reports whether this rule fires for the given event attributes.
// A rule without a shop scope matches every shop in the business.
func (r *BonusRule) Matches(trigger TriggerType, role StaffRole, shopID *uuid.UUID) bool {
	if !r.Active || r.Trigger != trigger || r.TargetRole != role {
		return false
	}
	if r.ShopID == nil {
		return true
	}
	return shopID != nil && *r.ShopID == *shopID
}

// EffectiveValue resolves the rate or amount to apply for the base amount.
// A malformed stored tier schedule degrades to the flat value; the parse
// error is returned so callers can log the degradation without aborting.
func (r *BonusRule) EffectiveValue(base decimal.Decimal) (value decimal.Decimal, fromTier bool, parseErr error) {
	if r.Tiers == "" {
		return r.Value, false, nil
	}
	tiers, err := ParseTierSchedule(r.Tiers)
	if err != nil {
		return r.Value, false, err
	}
	if v, ok := tiers.ResolveValue(base); ok {
		return v, true, nil
	}
	return r.Value, false, nil
}
