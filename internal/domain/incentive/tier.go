package incentive

import (
	"encoding/json"
	"strings"

	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tier maps a base-amount range to a rate or fixed value. A zero Max means
// the range is unbounded above.
type Tier struct {
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Value decimal.Decimal `json:"value"`
}

// Matches returns true if the base amount falls inside this tier's range
func (t Tier) Matches(base decimal.Decimal) bool {
	if base.LessThan(t.Min) {
		return false
	}
	return t.Max.IsZero() || base.LessThanOrEqual(t.Max)
}

// TierSchedule is an ordered list of tiers; the first matching tier wins.
type TierSchedule []Tier

// ParseTierSchedule decodes and validates a tier schedule from its JSON
// representation. It is used at rule-save time to reject malformed input;
// the runtime fallback in BonusRule.EffectiveValue remains as
// defense-in-depth for legacy rows.
func ParseTierSchedule(raw string) (TierSchedule, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var tiers TierSchedule
	if err := json.Unmarshal([]byte(raw), &tiers); err != nil {
		return nil, shared.NewDomainError("INVALID_TIERS", "Tier schedule is not valid JSON")
	}
	if len(tiers) == 0 {
		return nil, nil
	}
	for _, tier := range tiers {
		if tier.Min.IsNegative() {
			return nil, shared.NewDomainError("INVALID_TIERS", "Tier minimum cannot be negative")
		}
		if !tier.Max.IsZero() && tier.Max.LessThan(tier.Min) {
			return nil, shared.NewDomainError("INVALID_TIERS", "Tier maximum must be zero (unbounded) or at least the minimum")
		}
		if !tier.Value.IsPositive() {
			return nil, shared.NewDomainError("INVALID_TIERS", "Tier value must be greater than zero")
		}
	}
	return tiers, nil
}

// ResolveValue returns the value of the first tier matching the base amount.
// The second return is false when no tier matches.
func (s TierSchedule) ResolveValue(base decimal.Decimal) (decimal.Decimal, bool) {
	for _, tier := range s {
		if tier.Matches(base) {
			return tier.Value, true
		}
	}
	return decimal.Zero, false
}

// JSON renders the schedule back to its storage representation
func (s TierSchedule) JSON() (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
