package incentive

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TriggerInput describes one qualifying business event from the award
// calculator's point of view.
type TriggerInput struct {
	BusinessID    uuid.UUID
	ShopID        *uuid.UUID
	Trigger       TriggerType
	StaffMemberID uuid.UUID
	StaffName     string
	StaffRole     StaffRole
	SourceID      *uuid.UUID
	SourceRef     string
	BaseAmount    decimal.Decimal
}

// SkipReason explains why a matched rule produced no award
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipBelowThreshold SkipReason = "below_minimum_threshold"
	SkipCapExhausted   SkipReason = "period_cap_exhausted"
	SkipZeroAward      SkipReason = "zero_award"
	SkipTargetMissed   SkipReason = "target_not_reached"
	SkipMisconfigured  SkipReason = "rule_misconfigured"
)

// AwardOutcome is the result of evaluating one rule against one trigger
type AwardOutcome struct {
	Record *BonusRecord
	Skip   SkipReason
	// TierParseErr is non-fatal: the award fell back to the flat value and
	// the caller should log the degradation.
	TierParseErr error
}

// BuildAward evaluates one matched rule against a trigger event and returns
// either a PENDING record draft or a skip reason. priorAwarded is the sum of
// countable awards already granted to this staff member under this rule in
// the resolved period; it only matters when the rule carries a maximum cap.
func BuildAward(rule *BonusRule, in TriggerInput, now time.Time, priorAwarded decimal.Decimal) (AwardOutcome, error) {
	period, err := ResolvePeriod(rule.Period, now)
	if err != nil {
		return AwardOutcome{}, err
	}

	if rule.MinimumThreshold != nil && in.BaseAmount.LessThan(*rule.MinimumThreshold) {
		return AwardOutcome{Skip: SkipBelowThreshold}, nil
	}

	value, _, tierErr := rule.EffectiveValue(in.BaseAmount)
	raw := applyValue(rule.Calculation, value, in.BaseAmount)

	raw, skip := clampToCap(rule, raw, priorAwarded)
	if skip != SkipNone {
		return AwardOutcome{Skip: skip, TierParseErr: tierErr}, nil
	}

	var rate *decimal.Decimal
	if rule.Calculation == CalculationPercentage {
		rate = &value
	}

	record, err := NewBonusRecord(BonusRecordParams{
		BusinessID:    in.BusinessID,
		RuleID:        rule.ID,
		ShopID:        in.ShopID,
		StaffMemberID: in.StaffMemberID,
		StaffName:     in.StaffName,
		StaffRole:     in.StaffRole,
		Trigger:       in.Trigger,
		SourceID:      in.SourceID,
		SourceRef:     in.SourceRef,
		BaseAmount:    in.BaseAmount,
		Rate:          rate,
		AwardedAmount: raw,
		Period:        period,
	})
	if err != nil {
		return AwardOutcome{}, err
	}

	return AwardOutcome{Record: record, TierParseErr: tierErr}, nil
}

// BuildTargetAward evaluates one target-based rule for one staff member over
// an already-resolved period. metric is the aggregate the evaluator computed
// (collections, shop sales, or default count depending on the trigger).
// Tiers are intentionally not consulted on this path.
func BuildTargetAward(rule *BonusRule, in TriggerInput, period Period, metric decimal.Decimal, priorAwarded decimal.Decimal) (AwardOutcome, error) {
	base := metric

	switch rule.Trigger {
	case TriggerTargetHit, TriggerShopPerformance:
		if rule.TargetAmount == nil {
			return AwardOutcome{Skip: SkipMisconfigured}, nil
		}
		if metric.LessThan(*rule.TargetAmount) {
			return AwardOutcome{Skip: SkipTargetMissed}, nil
		}
	case TriggerZeroDefault:
		// metric is the defaulted-purchase count; qualification is zero
		if !metric.IsZero() {
			return AwardOutcome{Skip: SkipTargetMissed}, nil
		}
		if rule.Calculation == CalculationPercentage {
			// a percentage of "no defaults" is meaningless
			return AwardOutcome{Skip: SkipMisconfigured}, nil
		}
		base = decimal.NewFromInt(1)
	default:
		return AwardOutcome{Skip: SkipMisconfigured}, nil
	}

	raw := applyValue(rule.Calculation, rule.Value, base)

	raw, skip := clampToCap(rule, raw, priorAwarded)
	if skip != SkipNone {
		return AwardOutcome{Skip: skip}, nil
	}

	var rate *decimal.Decimal
	if rule.Calculation == CalculationPercentage {
		rate = &rule.Value
	}

	record, err := NewBonusRecord(BonusRecordParams{
		BusinessID:    in.BusinessID,
		RuleID:        rule.ID,
		ShopID:        in.ShopID,
		StaffMemberID: in.StaffMemberID,
		StaffName:     in.StaffName,
		StaffRole:     in.StaffRole,
		Trigger:       rule.Trigger,
		SourceRef:     in.SourceRef,
		BaseAmount:    base,
		Rate:          rate,
		AwardedAmount: raw,
		Period:        period,
	})
	if err != nil {
		return AwardOutcome{}, err
	}

	return AwardOutcome{Record: record}, nil
}

// applyValue turns a resolved rule value into a raw award amount
func applyValue(calc CalculationType, value, base decimal.Decimal) decimal.Decimal {
	if calc == CalculationPercentage {
		return base.Mul(value).Div(decimal.NewFromInt(100))
	}
	return value
}

// clampToCap reduces the raw award to the cap headroom left in the period.
// Returns a skip reason when nothing can be awarded.
func clampToCap(rule *BonusRule, raw, priorAwarded decimal.Decimal) (decimal.Decimal, SkipReason) {
	if rule.MaximumCap != nil {
		headroom := rule.MaximumCap.Sub(priorAwarded)
		if !headroom.IsPositive() {
			return decimal.Zero, SkipCapExhausted
		}
		if raw.GreaterThan(headroom) {
			// rounded down so the period total never crosses the cap
			raw = headroom.RoundDown(2)
		}
	}
	if !raw.IsPositive() {
		return decimal.Zero, SkipZeroAward
	}
	return raw, SkipNone
}
