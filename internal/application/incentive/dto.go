package incentive

import (
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ==================== Bonus Rule DTOs ====================

// CreateBonusRuleRequest represents a request to create a bonus rule
type CreateBonusRuleRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	ShopID           *uuid.UUID       `json:"shop_id"`
	TargetRole       string           `json:"target_role" binding:"required"`
	Trigger          string           `json:"trigger" binding:"required"`
	Calculation      string           `json:"calculation" binding:"required"`
	Value            decimal.Decimal  `json:"value" binding:"required"`
	MinimumThreshold *decimal.Decimal `json:"minimum_threshold"`
	MaximumCap       *decimal.Decimal `json:"maximum_cap"`
	TargetAmount     *decimal.Decimal `json:"target_amount"`
	Tiers            []TierInput      `json:"tiers"`
	Period           string           `json:"period" binding:"required"`
}

// TierInput is one band of a tiered rate schedule
type TierInput struct {
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

// UpdateBonusRuleRequest represents a request to update a bonus rule
type UpdateBonusRuleRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	ShopID           *uuid.UUID       `json:"shop_id"`
	TargetRole       string           `json:"target_role" binding:"required"`
	Trigger          string           `json:"trigger" binding:"required"`
	Calculation      string           `json:"calculation" binding:"required"`
	Value            decimal.Decimal  `json:"value" binding:"required"`
	MinimumThreshold *decimal.Decimal `json:"minimum_threshold"`
	MaximumCap       *decimal.Decimal `json:"maximum_cap"`
	TargetAmount     *decimal.Decimal `json:"target_amount"`
	Tiers            []TierInput      `json:"tiers"`
	Period           string           `json:"period" binding:"required"`
}

// ListBonusRulesRequest carries the query filters for rule listings
type ListBonusRulesRequest struct {
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
	Trigger    *string `form:"trigger"`
	TargetRole *string `form:"target_role"`
	ShopID     *string `form:"shop_id"`
	Active     *bool   `form:"active"`
}

// BonusRuleResponse represents a bonus rule in API responses
type BonusRuleResponse struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	ShopID           *uuid.UUID       `json:"shop_id,omitempty"`
	TargetRole       string           `json:"target_role"`
	Trigger          string           `json:"trigger"`
	Calculation      string           `json:"calculation"`
	Value            decimal.Decimal  `json:"value"`
	MinimumThreshold *decimal.Decimal `json:"minimum_threshold,omitempty"`
	MaximumCap       *decimal.Decimal `json:"maximum_cap,omitempty"`
	TargetAmount     *decimal.Decimal `json:"target_amount,omitempty"`
	Tiers            []TierInput      `json:"tiers,omitempty"`
	Period           string           `json:"period"`
	Active           bool             `json:"active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToBonusRuleResponse converts a domain rule to its response shape
func ToBonusRuleResponse(r *incentive.BonusRule) BonusRuleResponse {
	resp := BonusRuleResponse{
		ID:               r.ID,
		Name:             r.Name,
		ShopID:           r.ShopID,
		TargetRole:       string(r.TargetRole),
		Trigger:          string(r.Trigger),
		Calculation:      string(r.Calculation),
		Value:            r.Value,
		MinimumThreshold: r.MinimumThreshold,
		MaximumCap:       r.MaximumCap,
		TargetAmount:     r.TargetAmount,
		Period:           string(r.Period),
		Active:           r.Active,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if schedule, err := incentive.ParseTierSchedule(r.Tiers); err == nil {
		for _, tier := range schedule {
			resp.Tiers = append(resp.Tiers, TierInput{Min: tier.Min, Max: tier.Max, Value: tier.Value})
		}
	}
	return resp
}

// ==================== Bonus Record DTOs ====================

// ListBonusRecordsRequest carries the query filters for record listings
type ListBonusRecordsRequest struct {
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
	RuleID        *string `form:"rule_id"`
	StaffMemberID *string `form:"staff_member_id"`
	ShopID        *string `form:"shop_id"`
	Status        *string `form:"status"`
	Trigger       *string `form:"trigger"`
	From          *string `form:"from"`
	To            *string `form:"to"`
}

// BulkRecordActionRequest names the records a bulk status action covers
type BulkRecordActionRequest struct {
	RecordIDs        []uuid.UUID `json:"record_ids" binding:"required,min=1"`
	PaymentReference string      `json:"payment_reference"`
	Reason           string      `json:"reason"`
}

// BulkRecordActionResponse reports how many records the action touched
type BulkRecordActionResponse struct {
	Requested int `json:"requested"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
}

// BonusRecordResponse represents a bonus record in API responses
type BonusRecordResponse struct {
	ID               uuid.UUID        `json:"id"`
	RuleID           uuid.UUID        `json:"rule_id"`
	ShopID           *uuid.UUID       `json:"shop_id,omitempty"`
	StaffMemberID    uuid.UUID        `json:"staff_member_id"`
	StaffName        string           `json:"staff_name"`
	StaffRole        string           `json:"staff_role"`
	Trigger          string           `json:"trigger"`
	SourceID         *uuid.UUID       `json:"source_id,omitempty"`
	SourceRef        string           `json:"source_ref,omitempty"`
	BaseAmount       decimal.Decimal  `json:"base_amount"`
	Rate             *decimal.Decimal `json:"rate,omitempty"`
	AwardedAmount    decimal.Decimal  `json:"awarded_amount"`
	PeriodStart      time.Time        `json:"period_start"`
	PeriodEnd        time.Time        `json:"period_end"`
	Status           string           `json:"status"`
	ApprovedAt       *time.Time       `json:"approved_at,omitempty"`
	PaidAt           *time.Time       `json:"paid_at,omitempty"`
	PaymentReference string           `json:"payment_reference,omitempty"`
	RejectedAt       *time.Time       `json:"rejected_at,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// ToBonusRecordResponse converts a domain record to its response shape
func ToBonusRecordResponse(r *incentive.BonusRecord) BonusRecordResponse {
	return BonusRecordResponse{
		ID:               r.ID,
		RuleID:           r.RuleID,
		ShopID:           r.ShopID,
		StaffMemberID:    r.StaffMemberID,
		StaffName:        r.StaffName,
		StaffRole:        string(r.StaffRole),
		Trigger:          string(r.Trigger),
		SourceID:         r.SourceID,
		SourceRef:        r.SourceRef,
		BaseAmount:       r.BaseAmount,
		Rate:             r.Rate,
		AwardedAmount:    r.AwardedAmount,
		PeriodStart:      r.PeriodStart,
		PeriodEnd:        r.PeriodEnd,
		Status:           string(r.Status),
		ApprovedAt:       r.ApprovedAt,
		PaidAt:           r.PaidAt,
		PaymentReference: r.PaymentReference,
		RejectedAt:       r.RejectedAt,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
	}
}

func normalizeFilter(page, pageSize int) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 && pageSize <= 200 {
		filter.PageSize = pageSize
	}
	return filter
}

// ==================== Target Evaluation DTOs ====================

// EvaluateTargetsResponse reports the outcome of a target evaluation run
type EvaluateTargetsResponse struct {
	RulesEvaluated int       `json:"rules_evaluated"`
	AwardsCreated  int       `json:"awards_created"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
}
