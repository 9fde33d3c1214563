package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paylater/backend/internal/domain/incentive"
)

// GormBusinessProvider lists businesses for the nightly scheduler jobs.
// A business is active for scheduling purposes when it has at least one
// active bonus rule.
type GormBusinessProvider struct {
	db *gorm.DB
}

// NewGormBusinessProvider creates a new business provider
func NewGormBusinessProvider(db *gorm.DB) *GormBusinessProvider {
	return &GormBusinessProvider{db: db}
}

// ActiveBusinessIDs returns the distinct business IDs with active bonus rules
func (p *GormBusinessProvider) ActiveBusinessIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Model(&incentive.BonusRule{}).
		Where("active = ?", true).
		Distinct().
		Pluck("business_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active businesses: %w", err)
	}
	return ids, nil
}
