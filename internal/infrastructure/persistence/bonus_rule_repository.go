package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"gorm.io/gorm"
)

// GormBonusRuleRepository implements BonusRuleRepository using GORM
type GormBonusRuleRepository struct {
	db *gorm.DB
}

// NewGormBonusRuleRepository creates a new GormBonusRuleRepository
func NewGormBonusRuleRepository(db *gorm.DB) *GormBonusRuleRepository {
	return &GormBonusRuleRepository{db: db}
}

// FindByID finds a rule by ID within a business
func (r *GormBonusRuleRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*incentive.BonusRule, error) {
	var rule incentive.BonusRule
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// FindAll finds all rules matching the filter
func (r *GormBonusRuleRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter incentive.BonusRuleFilter) ([]incentive.BonusRule, int64, error) {
	query := r.db.WithContext(ctx).Model(&incentive.BonusRule{}).
		Where("business_id = ?", businessID)

	if filter.Trigger != nil {
		query = query.Where("trigger = ?", *filter.Trigger)
	}
	if filter.TargetRole != nil {
		query = query.Where("target_role = ?", *filter.TargetRole)
	}
	if filter.ShopID != nil {
		query = query.Where("shop_id = ?", *filter.ShopID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rules []incentive.BonusRule
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rules).Error; err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

// FindMatching returns active rules whose trigger, role and shop scope match.
// Business-wide rules (shop_id IS NULL) match events from any shop.
func (r *GormBonusRuleRepository) FindMatching(ctx context.Context, businessID uuid.UUID, trigger incentive.TriggerType, role incentive.StaffRole, shopID *uuid.UUID) ([]incentive.BonusRule, error) {
	query := r.db.WithContext(ctx).
		Where("business_id = ? AND active = ? AND trigger = ? AND target_role = ?",
			businessID, true, trigger, role)

	if shopID != nil {
		query = query.Where("shop_id IS NULL OR shop_id = ?", *shopID)
	} else {
		query = query.Where("shop_id IS NULL")
	}

	var rules []incentive.BonusRule
	if err := query.Order("created_at ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// FindTargetRules returns active rules with a target-based trigger
func (r *GormBonusRuleRepository) FindTargetRules(ctx context.Context, businessID uuid.UUID) ([]incentive.BonusRule, error) {
	var rules []incentive.BonusRule
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND active = ? AND trigger IN ?",
			businessID, true, incentive.TargetTriggers()).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save persists a new rule
func (r *GormBonusRuleRepository) Save(ctx context.Context, rule *incentive.BonusRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// Update persists changes to an existing rule
func (r *GormBonusRuleRepository) Update(ctx context.Context, rule *incentive.BonusRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete removes a rule
func (r *GormBonusRuleRepository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		Delete(&incentive.BonusRule{}).Error
}

// HasRecords reports whether any bonus record references the rule
func (r *GormBonusRuleRepository) HasRecords(ctx context.Context, ruleID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&incentive.BonusRecord{}).
		Where("rule_id = ?", ruleID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
