package persistence

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/credit"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPerformanceReader computes the aggregates the target evaluator
// qualifies staff against, straight from the credit tables.
type GormPerformanceReader struct {
	db *gorm.DB
}

// NewGormPerformanceReader creates a new GormPerformanceReader
func NewGormPerformanceReader(db *gorm.DB) *GormPerformanceReader {
	return &GormPerformanceReader{db: db}
}

// CollectionsTotal sums confirmed collections credited to the staff member
// within the period
func (r *GormPerformanceReader) CollectionsTotal(ctx context.Context, businessID, staffMemberID uuid.UUID, period incentive.Period) (decimal.Decimal, error) {
	var raw sql.NullString
	err := r.db.WithContext(ctx).Model(&credit.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("business_id = ? AND collector_id = ? AND status = ? AND collected_at BETWEEN ? AND ?",
			businessID, staffMemberID, credit.PaymentConfirmed, period.Start, period.End).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return parseSum(raw)
}

// ShopSalesTotal sums purchase totals booked in the shop within the period
func (r *GormPerformanceReader) ShopSalesTotal(ctx context.Context, businessID, shopID uuid.UUID, period incentive.Period) (decimal.Decimal, error) {
	var raw sql.NullString
	err := r.db.WithContext(ctx).Model(&credit.Purchase{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("business_id = ? AND shop_id = ? AND created_at BETWEEN ? AND ?",
			businessID, shopID, period.Start, period.End).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return parseSum(raw)
}

// DefaultCount counts purchases assigned to the staff member that entered
// default within the period
func (r *GormPerformanceReader) DefaultCount(ctx context.Context, businessID, staffMemberID uuid.UUID, period incentive.Period) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&credit.Purchase{}).
		Where("business_id = ? AND assigned_collector_id = ? AND defaulted_at BETWEEN ? AND ?",
			businessID, staffMemberID, period.Start, period.End).
		Count(&count).Error
	return count, err
}

func parseSum(raw sql.NullString) (decimal.Decimal, error) {
	if !raw.Valid || raw.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw.String)
}
