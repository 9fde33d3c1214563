package incentive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TargetService runs the periodic target evaluation: it walks every active
// target-based rule, measures each eligible staff member's aggregate for the
// current period, and awards those who qualify. The run is idempotent; a
// rule/staff/period tuple that already has a record is left alone.
type TargetService struct {
	ruleRepo       incentive.BonusRuleRepository
	recordRepo     incentive.BonusRecordRepository
	staffDirectory incentive.StaffDirectory
	performance    incentive.PerformanceReader
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTargetService creates a new target evaluation service
func NewTargetService(
	ruleRepo incentive.BonusRuleRepository,
	recordRepo incentive.BonusRecordRepository,
	staffDirectory incentive.StaffDirectory,
	performance incentive.PerformanceReader,
	logger *zap.Logger,
) *TargetService {
	return &TargetService{
		ruleRepo:       ruleRepo,
		recordRepo:     recordRepo,
		staffDirectory: staffDirectory,
		performance:    performance,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *TargetService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// EvaluateTargets runs one evaluation pass for a business as of now.
// One staff member failing never stops the rest of the run.
func (s *TargetService) EvaluateTargets(ctx context.Context, businessID uuid.UUID, now time.Time) (*EvaluateTargetsResponse, error) {
	rules, err := s.ruleRepo.FindTargetRules(ctx, businessID)
	if err != nil {
		return nil, err
	}

	resp := &EvaluateTargetsResponse{EvaluatedAt: now}
	for i := range rules {
		rule := &rules[i]
		resp.RulesEvaluated++

		period, err := incentive.ResolvePeriod(rule.Period, now)
		if err != nil {
			s.logger.Error("cannot resolve period for target rule",
				zap.String("rule_id", rule.ID.String()),
				zap.String("period", string(rule.Period)),
				zap.Error(err),
			)
			continue
		}

		staff, err := s.staffDirectory.ActiveByRole(ctx, businessID, rule.TargetRole, rule.ShopID)
		if err != nil {
			s.logger.Error("cannot list eligible staff for target rule",
				zap.String("rule_id", rule.ID.String()),
				zap.Error(err),
			)
			continue
		}

		for _, member := range staff {
			created, err := s.evaluateFor(ctx, rule, member, period)
			if err != nil {
				s.logger.Error("target evaluation failed for staff member",
					zap.String("rule_id", rule.ID.String()),
					zap.String("staff_member_id", member.ID.String()),
					zap.Error(err),
				)
				continue
			}
			if created {
				resp.AwardsCreated++
			}
		}
	}

	s.logger.Info("target evaluation finished",
		zap.String("business_id", businessID.String()),
		zap.Int("rules_evaluated", resp.RulesEvaluated),
		zap.Int("awards_created", resp.AwardsCreated),
	)
	return resp, nil
}

func (s *TargetService) evaluateFor(ctx context.Context, rule *incentive.BonusRule, member incentive.StaffInfo, period incentive.Period) (bool, error) {
	exists, err := s.recordRepo.ExistsForPeriod(ctx, rule.ID, member.ID, period)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	metric, err := s.measure(ctx, rule, member, period)
	if err != nil {
		return false, err
	}
	if metric == nil {
		// staff member cannot be measured against this rule (no shop)
		return false, nil
	}

	priorAwarded := decimal.Zero
	if rule.MaximumCap != nil {
		priorAwarded, err = s.recordRepo.SumAwarded(ctx, rule.ID, member.ID, period, incentive.CountableStatuses())
		if err != nil {
			return false, err
		}
	}

	input := incentive.TriggerInput{
		BusinessID:    rule.BusinessID,
		ShopID:        member.ShopID,
		Trigger:       rule.Trigger,
		StaffMemberID: member.ID,
		StaffName:     member.Name,
		StaffRole:     member.Role,
		SourceRef:     period.Label(),
	}

	outcome, err := incentive.BuildTargetAward(rule, input, period, *metric, priorAwarded)
	if err != nil {
		return false, err
	}
	if outcome.Skip != incentive.SkipNone {
		if outcome.Skip == incentive.SkipMisconfigured {
			s.logger.Warn("target rule is misconfigured",
				zap.String("rule_id", rule.ID.String()),
				zap.String("trigger", string(rule.Trigger)),
			)
		}
		return false, nil
	}

	record := outcome.Record
	if err := s.recordRepo.CreateCapped(ctx, record, rule.MaximumCap); err != nil {
		if errors.Is(err, shared.ErrDuplicateAward) {
			// a concurrent run won the insert; the outcome is the same
			return false, nil
		}
		if errors.Is(err, shared.ErrCapExhausted) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("target bonus awarded",
		zap.String("record_id", record.ID.String()),
		zap.String("rule_id", rule.ID.String()),
		zap.String("staff_member_id", member.ID.String()),
		zap.String("period", period.Label()),
		zap.String("awarded_amount", record.AwardedAmount.String()),
	)

	if s.eventPublisher != nil {
		for _, event := range record.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish bonus event",
					zap.String("event_type", event.EventType()),
					zap.Error(err),
				)
			}
		}
		record.ClearDomainEvents()
	}
	return true, nil
}

// measure computes the aggregate a rule qualifies against. A nil result with
// no error means the staff member falls outside the rule's measurable scope.
func (s *TargetService) measure(ctx context.Context, rule *incentive.BonusRule, member incentive.StaffInfo, period incentive.Period) (*decimal.Decimal, error) {
	switch rule.Trigger {
	case incentive.TriggerTargetHit:
		// collectors are measured on what they collected, sales staff on
		// what their shop sold
		if member.Role == incentive.RoleSalesStaff {
			return s.shopSales(ctx, rule, member, period)
		}
		total, err := s.performance.CollectionsTotal(ctx, rule.BusinessID, member.ID, period)
		if err != nil {
			return nil, err
		}
		return &total, nil
	case incentive.TriggerShopPerformance:
		return s.shopSales(ctx, rule, member, period)
	case incentive.TriggerZeroDefault:
		count, err := s.performance.DefaultCount(ctx, rule.BusinessID, member.ID, period)
		if err != nil {
			return nil, err
		}
		metric := decimal.NewFromInt(count)
		return &metric, nil
	default:
		return nil, shared.NewDomainError("INVALID_TRIGGER", "Trigger is not target based")
	}
}

func (s *TargetService) shopSales(ctx context.Context, rule *incentive.BonusRule, member incentive.StaffInfo, period incentive.Period) (*decimal.Decimal, error) {
	shopID := rule.ShopID
	if shopID == nil {
		shopID = member.ShopID
	}
	if shopID == nil {
		return nil, nil
	}
	total, err := s.performance.ShopSalesTotal(ctx, rule.BusinessID, *shopID, period)
	if err != nil {
		return nil, err
	}
	return &total, nil
}

// EvaluateForBusiness runs EvaluateTargets and reports only the award count.
// The nightly scheduler uses this narrower form.
func (s *TargetService) EvaluateForBusiness(ctx context.Context, businessID uuid.UUID, now time.Time) (int, error) {
	resp, err := s.EvaluateTargets(ctx, businessID, now)
	if err != nil {
		return 0, err
	}
	return resp.AwardsCreated, nil
}
