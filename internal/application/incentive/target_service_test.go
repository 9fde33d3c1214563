package incentive

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func targetRule(t *testing.T, businessID uuid.UUID, mutate func(*incentive.BonusRuleParams)) *incentive.BonusRule {
	t.Helper()
	params := incentive.BonusRuleParams{
		Name:         "Monthly collection target",
		TargetRole:   incentive.RoleDebtCollector,
		Trigger:      incentive.TriggerTargetHit,
		Calculation:  incentive.CalculationFixedAmount,
		Value:        dec("200"),
		TargetAmount: decPtr("5000"),
		Period:       incentive.PeriodMonthly,
	}
	if mutate != nil {
		mutate(&params)
	}
	rule, err := incentive.NewBonusRule(businessID, params)
	require.NoError(t, err)
	return rule
}

func collector(shopID *uuid.UUID) incentive.StaffInfo {
	return incentive.StaffInfo{
		ID:     uuid.New(),
		Name:   "Abena Owusu",
		Role:   incentive.RoleDebtCollector,
		ShopID: shopID,
		Active: true,
	}
}

func newTargetService(ruleRepo *MockBonusRuleRepository, recordRepo *MockBonusRecordRepository, directory *MockStaffDirectory, perf *MockPerformanceReader) *TargetService {
	return NewTargetService(ruleRepo, recordRepo, directory, perf, zap.NewNop())
}

func TestTargetService_EvaluateTargets(t *testing.T) {
	businessID := uuid.New()
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("collector who hit the target earns the bonus", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		recordRepo := new(MockBonusRecordRepository)
		directory := new(MockStaffDirectory)
		perf := new(MockPerformanceReader)
		service := newTargetService(ruleRepo, recordRepo, directory, perf)

		rule := targetRule(t, businessID, nil)
		staff := collector(nil)

		ruleRepo.On("FindTargetRules", ctx, businessID).Return([]incentive.BonusRule{*rule}, nil)
		directory.On("ActiveByRole", ctx, businessID, incentive.RoleDebtCollector, (*uuid.UUID)(nil)).
			Return([]incentive.StaffInfo{staff}, nil)
		recordRepo.On("ExistsForPeriod", ctx, rule.ID, staff.ID, mock.Anything).Return(false, nil)
		perf.On("CollectionsTotal", ctx, businessID, staff.ID, mock.Anything).Return(dec("6500"), nil)
		recordRepo.On("CreateCapped", ctx, mock.AnythingOfType("*incentive.BonusRecord"), (*decimal.Decimal)(nil)).
			Run(func(args mock.Arguments) {
				record := args.Get(1).(*incentive.BonusRecord)
				assert.True(t, record.AwardedAmount.Equal(dec("200")))
				assert.Equal(t, incentive.TriggerTargetHit, record.Trigger)
				assert.NotNil(t, record.DedupeKey)
			}).
			Return(nil)

		resp, err := service.EvaluateTargets(ctx, businessID, now)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.RulesEvaluated)
		assert.Equal(t, 1, resp.AwardsCreated)
		recordRepo.AssertExpectations(t)
	})

	t.Run("collector below the target earns nothing", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		recordRepo := new(MockBonusRecordRepository)
		directory := new(MockStaffDirectory)
		perf := new(MockPerformanceReader)
		service := newTargetService(ruleRepo, recordRepo, directory, perf)

		rule := targetRule(t, businessID, nil)
		staff := collector(nil)

		ruleRepo.On("FindTargetRules", ctx, businessID).Return([]incentive.BonusRule{*rule}, nil)
		directory.On("ActiveByRole", ctx, businessID, mock.Anything, mock.Anything).
			Return([]incentive.StaffInfo{staff}, nil)
		recordRepo.On("ExistsForPeriod", ctx, rule.ID, staff.ID, mock.Anything).Return(false, nil)
		perf.On("CollectionsTotal", ctx, businessID, staff.ID, mock.Anything).Return(dec("4999.99"), nil)

		resp, err := service.EvaluateTargets(ctx, businessID, now)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.AwardsCreated)
		recordRepo.AssertNotCalled(t, "CreateCapped")
	})

	t.Run("second run in the same period is a no-op", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		recordRepo := new(MockBonusRecordRepository)
		directory := new(MockStaffDirectory)
		perf := new(MockPerformanceReader)
		service := newTargetService(ruleRepo, recordRepo, directory, perf)

		rule := targetRule(t, businessID, nil)
		staff := collector(nil)

		ruleRepo.On("FindTargetRules", ctx, businessID).Return([]incentive.BonusRule{*rule}, nil)
		directory.On("ActiveByRole", ctx, businessID, mock.Anything, mock.Anything).
			Return([]incentive.StaffInfo{staff}, nil)
		recordRepo.On("ExistsForPeriod", ctx, rule.ID, staff.ID, mock.Anything).Return(true, nil)

		resp, err := service.EvaluateTargets(ctx, businessID, now)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.AwardsCreated)
		perf.AssertNotCalled(t, "CollectionsTotal")
		recordRepo.AssertNotCalled(t, "CreateCapped")
	})

	t.Run("zero default rule pays collectors with a clean period", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		recordRepo := new(MockBonusRecordRepository)
		directory := new(MockStaffDirectory)
		perf := new(MockPerformanceReader)
		service := newTargetService(ruleRepo, recordRepo, directory, perf)

		rule := targetRule(t, businessID, func(p *incentive.BonusRuleParams) {
			p.Name = "Zero default bonus"
			p.Trigger = incentive.TriggerZeroDefault
			p.TargetAmount = nil
			p.Value = dec("150")
		})
		clean := collector(nil)
		lapsed := collector(nil)

		ruleRepo.On("FindTargetRules", ctx, businessID).Return([]incentive.BonusRule{*rule}, nil)
		directory.On("ActiveByRole", ctx, businessID, mock.Anything, mock.Anything).
			Return([]incentive.StaffInfo{clean, lapsed}, nil)
		recordRepo.On("ExistsForPeriod", ctx, rule.ID, mock.Anything, mock.Anything).Return(false, nil)
		perf.On("DefaultCount", ctx, businessID, clean.ID, mock.Anything).Return(int64(0), nil)
		perf.On("DefaultCount", ctx, businessID, lapsed.ID, mock.Anything).Return(int64(2), nil)
		recordRepo.On("CreateCapped", ctx, mock.Anything, (*decimal.Decimal)(nil)).Return(nil)

		resp, err := service.EvaluateTargets(ctx, businessID, now)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.AwardsCreated)
	})

	t.Run("shop performance without a shop is immeasurable", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		recordRepo := new(MockBonusRecordRepository)
		directory := new(MockStaffDirectory)
		perf := new(MockPerformanceReader)
		service := newTargetService(ruleRepo, recordRepo, directory, perf)

		rule := targetRule(t, businessID, func(p *incentive.BonusRuleParams) {
			p.Name = "Shop sales target"
			p.Trigger = incentive.TriggerShopPerformance
			p.TargetRole = incentive.RoleShopManager
		})
		unassigned := incentive.StaffInfo{ID: uuid.New(), Name: "Yaw", Role: incentive.RoleShopManager, Active: true}

		ruleRepo.On("FindTargetRules", ctx, businessID).Return([]incentive.BonusRule{*rule}, nil)
		directory.On("ActiveByRole", ctx, businessID, incentive.RoleShopManager, mock.Anything).
			Return([]incentive.StaffInfo{unassigned}, nil)
		recordRepo.On("ExistsForPeriod", ctx, rule.ID, unassigned.ID, mock.Anything).Return(false, nil)

		resp, err := service.EvaluateTargets(ctx, businessID, now)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.AwardsCreated)
		perf.AssertNotCalled(t, "ShopSalesTotal")
	})

	t.Run("shop performance measures the shop-wide sales total", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		recordRepo := new(MockBonusRecordRepository)
		directory := new(MockStaffDirectory)
		perf := new(MockPerformanceReader)
		service := newTargetService(ruleRepo, recordRepo, directory, perf)

		shopID := uuid.New()
		rule := targetRule(t, businessID, func(p *incentive.BonusRuleParams) {
			p.Name = "Shop sales target"
			p.Trigger = incentive.TriggerShopPerformance
			p.TargetRole = incentive.RoleShopManager
			p.ShopID = &shopID
			p.TargetAmount = decPtr("20000")
		})
		manager := collector(&shopID)
		manager.Role = incentive.RoleShopManager

		ruleRepo.On("FindTargetRules", ctx, businessID).Return([]incentive.BonusRule{*rule}, nil)
		directory.On("ActiveByRole", ctx, businessID, incentive.RoleShopManager, &shopID).
			Return([]incentive.StaffInfo{manager}, nil)
		recordRepo.On("ExistsForPeriod", ctx, rule.ID, manager.ID, mock.Anything).Return(false, nil)
		perf.On("ShopSalesTotal", ctx, businessID, shopID, mock.Anything).Return(dec("25000"), nil)
		recordRepo.On("CreateCapped", ctx, mock.Anything, (*decimal.Decimal)(nil)).Return(nil)

		resp, err := service.EvaluateTargets(ctx, businessID, now)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.AwardsCreated)
	})
}
