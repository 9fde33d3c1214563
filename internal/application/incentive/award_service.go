package incentive

import (
	"context"
	"errors"
	"time"

	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AwardService turns qualifying business events into PENDING bonus records.
// It runs downstream of the primary action, so every per-rule failure is
// logged and skipped rather than propagated.
type AwardService struct {
	ruleRepo       incentive.BonusRuleRepository
	recordRepo     incentive.BonusRecordRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAwardService creates a new award service
func NewAwardService(
	ruleRepo incentive.BonusRuleRepository,
	recordRepo incentive.BonusRecordRepository,
	logger *zap.Logger,
) *AwardService {
	return &AwardService{
		ruleRepo:   ruleRepo,
		recordRepo: recordRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AwardService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CalculateAwards evaluates every active rule matching the trigger and
// persists the resulting bonus records. One rule failing never stops the
// others; the returned slice holds only the records actually created.
func (s *AwardService) CalculateAwards(ctx context.Context, in incentive.TriggerInput) ([]*incentive.BonusRecord, error) {
	rules, err := s.ruleRepo.FindMatching(ctx, in.BusinessID, in.Trigger, in.StaffRole, in.ShopID)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}

	now := time.Now()
	var created []*incentive.BonusRecord
	for i := range rules {
		rule := &rules[i]
		record, err := s.applyRule(ctx, rule, in, now)
		if err != nil {
			s.logger.Error("bonus rule evaluation failed",
				zap.String("rule_id", rule.ID.String()),
				zap.String("trigger", string(in.Trigger)),
				zap.String("staff_member_id", in.StaffMemberID.String()),
				zap.Error(err),
			)
			continue
		}
		if record != nil {
			created = append(created, record)
		}
	}
	return created, nil
}

func (s *AwardService) applyRule(ctx context.Context, rule *incentive.BonusRule, in incentive.TriggerInput, now time.Time) (*incentive.BonusRecord, error) {
	priorAwarded := decimal.Zero
	if rule.MaximumCap != nil {
		period, err := incentive.ResolvePeriod(rule.Period, now)
		if err != nil {
			return nil, err
		}
		priorAwarded, err = s.recordRepo.SumAwarded(ctx, rule.ID, in.StaffMemberID, period, incentive.CountableStatuses())
		if err != nil {
			return nil, err
		}
	}

	outcome, err := incentive.BuildAward(rule, in, now, priorAwarded)
	if err != nil {
		return nil, err
	}
	if outcome.TierParseErr != nil {
		s.logger.Warn("tier schedule unreadable, falling back to flat value",
			zap.String("rule_id", rule.ID.String()),
			zap.Error(outcome.TierParseErr),
		)
	}
	if outcome.Skip != incentive.SkipNone {
		s.logger.Debug("bonus rule matched but produced no award",
			zap.String("rule_id", rule.ID.String()),
			zap.String("staff_member_id", in.StaffMemberID.String()),
			zap.String("reason", string(outcome.Skip)),
		)
		return nil, nil
	}

	record := outcome.Record
	if rule.MaximumCap != nil {
		err = s.recordRepo.CreateCapped(ctx, record, rule.MaximumCap)
	} else {
		err = s.recordRepo.Create(ctx, record)
	}
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateAward) {
			s.logger.Warn("duplicate award suppressed",
				zap.String("rule_id", rule.ID.String()),
				zap.String("staff_member_id", in.StaffMemberID.String()),
			)
			return nil, nil
		}
		if errors.Is(err, shared.ErrCapExhausted) {
			s.logger.Debug("period cap exhausted, award skipped",
				zap.String("rule_id", rule.ID.String()),
				zap.String("staff_member_id", in.StaffMemberID.String()),
			)
			return nil, nil
		}
		return nil, err
	}

	s.logger.Info("bonus awarded",
		zap.String("record_id", record.ID.String()),
		zap.String("rule_id", rule.ID.String()),
		zap.String("staff_member_id", in.StaffMemberID.String()),
		zap.String("trigger", string(in.Trigger)),
		zap.String("awarded_amount", record.AwardedAmount.String()),
	)

	s.publishEvents(ctx, record)
	return record, nil
}

func (s *AwardService) publishEvents(ctx context.Context, record *incentive.BonusRecord) {
	if s.eventPublisher == nil {
		return
	}
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
