package incentive

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BonusRecord is a single awarded incentive instance tied to one rule, one
// staff member and one period. Records are created PENDING by the award
// calculator or the target evaluator and only move through the lifecycle via
// explicit admin action.
type BonusRecord struct {
	shared.BusinessAggregateRoot
	RuleID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopID        *uuid.UUID      `gorm:"type:uuid;index"`
	StaffMemberID uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffName     string          `gorm:"type:varchar(200);not null"` // denormalized for display
	StaffRole     StaffRole       `gorm:"type:varchar(30);not null"`
	Trigger       TriggerType     `gorm:"type:varchar(30);not null;index"`
	SourceID      *uuid.UUID      `gorm:"type:uuid;index"`
	SourceRef     string          `gorm:"type:varchar(100)"`
	BaseAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate          *decimal.Decimal `gorm:"type:decimal(18,4)"` // rule percentage at award time, for audit
	AwardedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PeriodStart   time.Time       `gorm:"not null;index:idx_bonus_records_period"`
	PeriodEnd     time.Time       `gorm:"not null;index:idx_bonus_records_period"`
	Status        BonusStatus     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	// DedupeKey is set for target-based awards only; the unique index turns a
	// concurrent duplicate evaluation into a constraint violation instead of a
	// silent double award.
	DedupeKey        *string    `gorm:"type:varchar(200);uniqueIndex:idx_bonus_records_dedupe"`
	ApprovedAt       *time.Time
	ApprovedBy       *uuid.UUID `gorm:"type:uuid"`
	PaidAt           *time.Time
	PaidBy           *uuid.UUID `gorm:"type:uuid"`
	PaymentReference string     `gorm:"type:varchar(100)"`
	RejectedAt       *time.Time
	RejectedBy       *uuid.UUID `gorm:"type:uuid"`
	Notes            string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BonusRecord) TableName() string {
	return "bonus_records"
}

// BonusRecordParams carries everything needed to create a PENDING draft
type BonusRecordParams struct {
	BusinessID    uuid.UUID
	RuleID        uuid.UUID
	ShopID        *uuid.UUID
	StaffMemberID uuid.UUID
	StaffName     string
	StaffRole     StaffRole
	Trigger       TriggerType
	SourceID      *uuid.UUID
	SourceRef     string
	BaseAmount    decimal.Decimal
	Rate          *decimal.Decimal
	AwardedAmount decimal.Decimal
	Period        Period
}

// NewBonusRecord creates a PENDING bonus record draft. The awarded amount is
// rounded half away from zero to two decimal places.
func NewBonusRecord(params BonusRecordParams) (*BonusRecord, error) {
	if params.BusinessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if params.RuleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RULE", "Rule ID cannot be empty")
	}
	if params.StaffMemberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff member ID cannot be empty")
	}
	if params.AwardedAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Awarded amount cannot be negative")
	}
	if params.Period.End.Before(params.Period.Start) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot precede period start")
	}

	record := &BonusRecord{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(params.BusinessID),
		RuleID:                params.RuleID,
		ShopID:                params.ShopID,
		StaffMemberID:         params.StaffMemberID,
		StaffName:             params.StaffName,
		StaffRole:             params.StaffRole,
		Trigger:               params.Trigger,
		SourceID:              params.SourceID,
		SourceRef:             params.SourceRef,
		BaseAmount:            params.BaseAmount,
		Rate:                  params.Rate,
		AwardedAmount:         params.AwardedAmount.Round(2),
		PeriodStart:           params.Period.Start,
		PeriodEnd:             params.Period.End,
		Status:                StatusPending,
	}

	if params.Trigger.IsTargetBased() {
		key := TargetDedupeKey(params.RuleID, params.StaffMemberID, params.Period)
		record.DedupeKey = &key
	}

	record.AddDomainEvent(NewBonusAwardedEvent(record))
	return record, nil
}

// TargetDedupeKey builds the uniqueness key guarding target-based awards
// against duplicate creation for the same rule, staff member and period.
func TargetDedupeKey(ruleID, staffMemberID uuid.UUID, period Period) string {
	return fmt.Sprintf("%s:%s:%d:%d", ruleID, staffMemberID, period.Start.Unix(), period.End.Unix())
}

// Approve moves a PENDING record to APPROVED
func (r *BonusRecord) Approve(actor uuid.UUID) error {
	if !r.Status.CanApprove() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve record in %s status", r.Status))
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Approving user ID is required")
	}

	now := time.Now()
	r.Status = StatusApproved
	r.ApprovedAt = &now
	r.ApprovedBy = &actor
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewBonusApprovedEvent(r))
	return nil
}

// MarkPaid moves a PENDING or APPROVED record to PAID, stamping an optional
// external payment reference.
func (r *BonusRecord) MarkPaid(actor uuid.UUID, paymentRef string) error {
	if !r.Status.CanPay() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay record in %s status", r.Status))
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Paying user ID is required")
	}

	now := time.Now()
	r.Status = StatusPaid
	r.PaidAt = &now
	r.PaidBy = &actor
	r.PaymentReference = paymentRef
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewBonusPaidEvent(r))
	return nil
}

// Reject moves a PENDING or APPROVED record to REJECTED. The reason replaces
// any existing notes.
func (r *BonusRecord) Reject(actor uuid.UUID, reason string) error {
	if !r.Status.CanReject() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject record in %s status", r.Status))
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Rejecting user ID is required")
	}

	now := time.Now()
	r.Status = StatusRejected
	r.RejectedAt = &now
	r.RejectedBy = &actor
	r.Notes = reason
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewBonusRejectedEvent(r))
	return nil
}

// PeriodWindow returns the award bucket this record belongs to
func (r *BonusRecord) PeriodWindow() Period {
	return Period{Start: r.PeriodStart, End: r.PeriodEnd}
}
