package incentive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RuleService manages the bonus rule catalog
type RuleService struct {
	ruleRepo       incentive.BonusRuleRepository
	eventPublisher shared.EventPublisher
	audit          shared.AuditTrail
	logger         *zap.Logger
}

// NewRuleService creates a new rule service
func NewRuleService(ruleRepo incentive.BonusRuleRepository, logger *zap.Logger) *RuleService {
	return &RuleService{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *RuleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetAuditTrail sets the audit trail recorder
func (s *RuleService) SetAuditTrail(trail shared.AuditTrail) {
	s.audit = trail
}

// Create validates and saves a new bonus rule
func (s *RuleService) Create(ctx context.Context, businessID, actorID uuid.UUID, req CreateBonusRuleRequest) (*BonusRuleResponse, error) {
	params, err := toRuleParams(req.Name, req.ShopID, req.TargetRole, req.Trigger, req.Calculation,
		req.Value, req.MinimumThreshold, req.MaximumCap, req.TargetAmount, req.Tiers, req.Period)
	if err != nil {
		return nil, err
	}

	rule, err := incentive.NewBonusRule(businessID, params)
	if err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, rule)
	s.recordAudit(ctx, businessID, actorID, "bonus_rule.create", rule.ID, rule.Name)

	resp := ToBonusRuleResponse(rule)
	return &resp, nil
}

// Update replaces a rule's definition. Existing records keep the amounts
// they were awarded under the old definition.
func (s *RuleService) Update(ctx context.Context, businessID, actorID, ruleID uuid.UUID, req UpdateBonusRuleRequest) (*BonusRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, businessID, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, shared.ErrNotFound
	}

	params, err := toRuleParams(req.Name, req.ShopID, req.TargetRole, req.Trigger, req.Calculation,
		req.Value, req.MinimumThreshold, req.MaximumCap, req.TargetAmount, req.Tiers, req.Period)
	if err != nil {
		return nil, err
	}
	if err := rule.Update(params); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, rule)
	s.recordAudit(ctx, businessID, actorID, "bonus_rule.update", rule.ID, rule.Name)

	resp := ToBonusRuleResponse(rule)
	return &resp, nil
}

// SetActive toggles a rule on or off
func (s *RuleService) SetActive(ctx context.Context, businessID, actorID, ruleID uuid.UUID, active bool) (*BonusRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, businessID, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, shared.ErrNotFound
	}

	rule.SetActive(active)
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, rule)
	action := "bonus_rule.deactivate"
	if active {
		action = "bonus_rule.activate"
	}
	s.recordAudit(ctx, businessID, actorID, action, rule.ID, rule.Name)

	resp := ToBonusRuleResponse(rule)
	return &resp, nil
}

// Delete removes a rule. A rule that has already produced bonus records is
// deactivated instead so that record history keeps a valid reference; the
// returned flag reports whether the rule was retired rather than deleted.
func (s *RuleService) Delete(ctx context.Context, businessID, actorID, ruleID uuid.UUID) (retired bool, err error) {
	rule, err := s.ruleRepo.FindByID(ctx, businessID, ruleID)
	if err != nil {
		return false, err
	}
	if rule == nil {
		return false, shared.ErrNotFound
	}

	hasRecords, err := s.ruleRepo.HasRecords(ctx, ruleID)
	if err != nil {
		return false, err
	}
	if hasRecords {
		rule.SetActive(false)
		if err := s.ruleRepo.Update(ctx, rule); err != nil {
			return false, err
		}
		s.publishEvents(ctx, rule)
		s.recordAudit(ctx, businessID, actorID, "bonus_rule.retire", rule.ID, rule.Name)
		return true, nil
	}

	if err := s.ruleRepo.Delete(ctx, businessID, ruleID); err != nil {
		return false, err
	}
	s.recordAudit(ctx, businessID, actorID, "bonus_rule.delete", rule.ID, rule.Name)
	return false, nil
}

// Get returns one rule
func (s *RuleService) Get(ctx context.Context, businessID, ruleID uuid.UUID) (*BonusRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, businessID, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToBonusRuleResponse(rule)
	return &resp, nil
}

// List returns a filtered page of rules
func (s *RuleService) List(ctx context.Context, businessID uuid.UUID, req ListBonusRulesRequest) (*shared.Paginated[BonusRuleResponse], error) {
	filter := incentive.BonusRuleFilter{
		Filter: normalizeFilter(req.Page, req.PageSize),
		Active: req.Active,
	}
	if req.Trigger != nil {
		trigger := incentive.TriggerType(*req.Trigger)
		if !trigger.IsValid() {
			return nil, shared.NewDomainError("INVALID_TRIGGER", fmt.Sprintf("Unknown trigger type: %s", *req.Trigger))
		}
		filter.Trigger = &trigger
	}
	if req.TargetRole != nil {
		role := incentive.StaffRole(*req.TargetRole)
		if !role.IsValid() {
			return nil, shared.NewDomainError("INVALID_ROLE", fmt.Sprintf("Unknown staff role: %s", *req.TargetRole))
		}
		filter.TargetRole = &role
	}
	if req.ShopID != nil {
		shopID, err := uuid.Parse(*req.ShopID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID is not a valid UUID")
		}
		filter.ShopID = &shopID
	}

	rules, total, err := s.ruleRepo.FindAll(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]BonusRuleResponse, 0, len(rules))
	for i := range rules {
		items = append(items, ToBonusRuleResponse(&rules[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *RuleService) publishEvents(ctx context.Context, rule *incentive.BonusRule) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range rule.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish rule event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	rule.ClearDomainEvents()
}

func (s *RuleService) recordAudit(ctx context.Context, businessID, actorID uuid.UUID, action string, entityID uuid.UUID, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, shared.AuditEntry{
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     action,
		EntityType: "BonusRule",
		EntityID:   entityID,
		Detail:     detail,
	})
}

func toRuleParams(
	name string,
	shopID *uuid.UUID,
	role, trigger, calculation string,
	value decimal.Decimal,
	minThreshold, maxCap, targetAmount *decimal.Decimal,
	tiers []TierInput,
	period string,
) (incentive.BonusRuleParams, error) {
	tiersJSON := ""
	if len(tiers) > 0 {
		schedule := make(incentive.TierSchedule, 0, len(tiers))
		for _, t := range tiers {
			schedule = append(schedule, incentive.Tier{Min: t.Min, Max: t.Max, Value: t.Value})
		}
		raw, err := json.Marshal(schedule)
		if err != nil {
			return incentive.BonusRuleParams{}, err
		}
		tiersJSON = string(raw)
	}

	return incentive.BonusRuleParams{
		Name:             name,
		ShopID:           shopID,
		TargetRole:       incentive.StaffRole(role),
		Trigger:          incentive.TriggerType(trigger),
		Calculation:      incentive.CalculationType(calculation),
		Value:            value,
		MinimumThreshold: minThreshold,
		MaximumCap:       maxCap,
		TargetAmount:     targetAmount,
		Tiers:            tiersJSON,
		Period:           incentive.PeriodGranularity(period),
	}, nil
}
