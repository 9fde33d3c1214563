package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBonusRecordRepository implements BonusRecordRepository using GORM
type GormBonusRecordRepository struct {
	db *gorm.DB
}

// NewGormBonusRecordRepository creates a new GormBonusRecordRepository
func NewGormBonusRecordRepository(db *gorm.DB) *GormBonusRecordRepository {
	return &GormBonusRecordRepository{db: db}
}

// FindByID finds a record by ID within a business
func (r *GormBonusRecordRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*incentive.BonusRecord, error) {
	var record incentive.BonusRecord
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByIDs loads the named records within a business
func (r *GormBonusRecordRepository) FindByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]incentive.BonusRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var records []incentive.BonusRecord
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id IN ?", businessID, ids).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll finds all records matching the filter
func (r *GormBonusRecordRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter incentive.BonusRecordFilter) ([]incentive.BonusRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&incentive.BonusRecord{}).
		Where("business_id = ?", businessID)

	if filter.RuleID != nil {
		query = query.Where("rule_id = ?", *filter.RuleID)
	}
	if filter.StaffMemberID != nil {
		query = query.Where("staff_member_id = ?", *filter.StaffMemberID)
	}
	if filter.ShopID != nil {
		query = query.Where("shop_id = ?", *filter.ShopID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Trigger != nil {
		query = query.Where("trigger = ?", *filter.Trigger)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []incentive.BonusRecord
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// SumAwarded totals awarded amounts for a rule/staff/period across statuses
func (r *GormBonusRecordRepository) SumAwarded(ctx context.Context, ruleID, staffMemberID uuid.UUID, period incentive.Period, statuses []incentive.BonusStatus) (decimal.Decimal, error) {
	return sumAwarded(r.db.WithContext(ctx), ruleID, staffMemberID, period, statuses)
}

// ExistsForPeriod reports whether a record exists for the rule/staff/period
func (r *GormBonusRecordRepository) ExistsForPeriod(ctx context.Context, ruleID, staffMemberID uuid.UUID, period incentive.Period) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&incentive.BonusRecord{}).
		Where("rule_id = ? AND staff_member_id = ? AND period_start = ? AND period_end = ?",
			ruleID, staffMemberID, period.Start, period.End).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a record
func (r *GormBonusRecordRepository) Create(ctx context.Context, record *incentive.BonusRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// CreateCapped re-reads the period total and inserts the record inside one
// serializable transaction, clamping the award to whatever cap headroom the
// transaction sees. Concurrent inserts for the same cap window either
// serialize or fail and retry at a higher level.
func (r *GormBonusRecordRepository) CreateCapped(ctx context.Context, record *incentive.BonusRecord, cap *decimal.Decimal) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cap != nil {
			prior, err := sumAwarded(tx, record.RuleID, record.StaffMemberID, record.PeriodWindow(), incentive.CountableStatuses())
			if err != nil {
				return err
			}
			if err := clampToHeadroom(record, *cap, prior); err != nil {
				return err
			}
		}
		return tx.Create(record).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// Update persists changes to an existing record
func (r *GormBonusRecordRepository) Update(ctx context.Context, record *incentive.BonusRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// UpdateBatch persists a set of modified records in one transaction
func (r *GormBonusRecordRepository) UpdateBatch(ctx context.Context, records []incentive.BonusRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Save(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func sumAwarded(db *gorm.DB, ruleID, staffMemberID uuid.UUID, period incentive.Period, statuses []incentive.BonusStatus) (decimal.Decimal, error) {
	var raw sql.NullString
	err := db.Model(&incentive.BonusRecord{}).
		Select("COALESCE(SUM(awarded_amount), 0)").
		Where("rule_id = ? AND staff_member_id = ? AND period_start = ? AND period_end = ? AND status IN ?",
			ruleID, staffMemberID, period.Start, period.End, statuses).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid || raw.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw.String)
}

// clampToHeadroom trims the award to what the cap still allows, rounding
// down so the period total never crosses the cap. Returns ErrCapExhausted
// when nothing awardable remains.
func clampToHeadroom(record *incentive.BonusRecord, cap, prior decimal.Decimal) error {
	headroom := cap.Sub(prior)
	if record.AwardedAmount.GreaterThan(headroom) {
		record.AwardedAmount = headroom.RoundDown(2)
	}
	if !record.AwardedAmount.IsPositive() {
		return shared.ErrCapExhausted
	}
	return nil
}

// translateDuplicate maps unique-constraint violations onto the domain's
// duplicate-award sentinel so callers can suppress the race silently.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return shared.ErrDuplicateAward
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return shared.ErrDuplicateAward
	}
	return err
}
