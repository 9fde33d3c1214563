package incentive

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BonusRuleFilter narrows rule list queries
type BonusRuleFilter struct {
	shared.Filter
	Trigger    *TriggerType
	TargetRole *StaffRole
	ShopID     *uuid.UUID
	Active     *bool
}

// BonusRuleRepository is the persistence contract for bonus rules
type BonusRuleRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*BonusRule, error)
	FindAll(ctx context.Context, businessID uuid.UUID, filter BonusRuleFilter) ([]BonusRule, int64, error)
	// FindMatching returns active rules whose trigger, target role and shop
	// scope (business-wide or the given shop) match the event.
	FindMatching(ctx context.Context, businessID uuid.UUID, trigger TriggerType, role StaffRole, shopID *uuid.UUID) ([]BonusRule, error)
	// FindTargetRules returns active rules with a target-based trigger type
	FindTargetRules(ctx context.Context, businessID uuid.UUID) ([]BonusRule, error)
	Save(ctx context.Context, rule *BonusRule) error
	Update(ctx context.Context, rule *BonusRule) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
	// HasRecords reports whether any bonus record references the rule
	HasRecords(ctx context.Context, ruleID uuid.UUID) (bool, error)
}

// BonusRecordFilter narrows record list queries
type BonusRecordFilter struct {
	shared.Filter
	RuleID        *uuid.UUID
	StaffMemberID *uuid.UUID
	ShopID        *uuid.UUID
	Status        *BonusStatus
	Trigger       *TriggerType
	From          *time.Time
	To            *time.Time
}

// BonusRecordRepository is the persistence contract for bonus records
type BonusRecordRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*BonusRecord, error)
	FindByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]BonusRecord, error)
	FindAll(ctx context.Context, businessID uuid.UUID, filter BonusRecordFilter) ([]BonusRecord, int64, error)
	// SumAwarded totals awarded amounts for a rule/staff/period across the
	// given statuses. Used for cap headroom checks.
	SumAwarded(ctx context.Context, ruleID, staffMemberID uuid.UUID, period Period, statuses []BonusStatus) (decimal.Decimal, error)
	// ExistsForPeriod reports whether a record already exists for the
	// rule/staff/period tuple. Idempotency guard for the target evaluator.
	ExistsForPeriod(ctx context.Context, ruleID, staffMemberID uuid.UUID, period Period) (bool, error)
	Create(ctx context.Context, record *BonusRecord) error
	// CreateCapped re-checks the period total and inserts the record inside a
	// single serializable transaction, clamping the awarded amount to the cap
	// headroom found there. Returns shared.ErrDuplicateAward when the dedupe
	// key collides. cap is nil for uncapped rules.
	CreateCapped(ctx context.Context, record *BonusRecord, cap *decimal.Decimal) error
	Update(ctx context.Context, record *BonusRecord) error
	UpdateBatch(ctx context.Context, records []BonusRecord) error
}

// StaffInfo is the slice of a staff member the incentive engine needs
type StaffInfo struct {
	ID     uuid.UUID
	UserID *uuid.UUID
	Name   string
	Role   StaffRole
	ShopID *uuid.UUID
	Active bool
}

// StaffDirectory is the read contract for eligible staff rosters
type StaffDirectory interface {
	// ActiveByRole returns active staff members with the given role,
	// optionally limited to one shop.
	ActiveByRole(ctx context.Context, businessID uuid.UUID, role StaffRole, shopID *uuid.UUID) ([]StaffInfo, error)
}

// PerformanceReader is the read contract for the aggregates the target
// evaluator qualifies against.
type PerformanceReader interface {
	// CollectionsTotal sums confirmed collections credited to the staff
	// member within the period.
	CollectionsTotal(ctx context.Context, businessID, staffMemberID uuid.UUID, period Period) (decimal.Decimal, error)
	// ShopSalesTotal sums purchase totals created in the shop within the period
	ShopSalesTotal(ctx context.Context, businessID, shopID uuid.UUID, period Period) (decimal.Decimal, error)
	// DefaultCount counts purchases assigned to the staff member that entered
	// a defaulted status within the period.
	DefaultCount(ctx context.Context, businessID, staffMemberID uuid.UUID, period Period) (int64, error)
}
