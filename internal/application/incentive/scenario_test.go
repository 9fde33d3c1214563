package incentive

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Follows one commission through its whole life: a collector banks GHS 1000,
// the confirmation event produces a pending five percent award, and an admin
// approves then pays it out.
func TestCollectionCommissionLifecycle(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	ruleRepo := new(MockBonusRuleRepository)
	recordRepo := new(MockBonusRecordRepository)
	staffRepo := new(MockStaffMemberRepository)

	handler := newHandlerFixture(ruleRepo, recordRepo, staffRepo)
	recordService := NewRecordService(recordRepo, zap.NewNop())

	collector := activeCollector(t, businessID)
	rule := makeRule(t, businessID, nil) // 5% of collections, no cap

	staffRepo.On("FindByID", ctx, businessID, collector.ID).Return(collector, nil)
	ruleRepo.On("FindMatching", ctx, businessID, incentive.TriggerCollection, incentive.RoleDebtCollector, mock.Anything).
		Return([]incentive.BonusRule{*rule}, nil)

	var awarded *incentive.BonusRecord
	recordRepo.On("Create", ctx, mock.AnythingOfType("*incentive.BonusRecord")).
		Run(func(args mock.Arguments) {
			awarded = args.Get(1).(*incentive.BonusRecord)
		}).
		Return(nil)

	event := confirmedPayment(t, businessID, collector.ID, false, false)
	require.NoError(t, handler.Handle(ctx, event))

	require.NotNil(t, awarded)
	assert.Equal(t, incentive.StatusPending, awarded.Status)
	assert.True(t, awarded.BaseAmount.Equal(dec("1000")))
	assert.True(t, awarded.AwardedAmount.Equal(dec("50.00")))
	require.NotNil(t, awarded.Rate)
	assert.True(t, awarded.Rate.Equal(dec("5")))
	assert.Equal(t, collector.ID, awarded.StaffMemberID)

	// approval
	approver := uuid.New()
	recordRepo.On("FindByIDs", ctx, businessID, []uuid.UUID{awarded.ID}).
		Return([]incentive.BonusRecord{*awarded}, nil).Once()
	recordRepo.On("UpdateBatch", ctx, mock.MatchedBy(func(records []incentive.BonusRecord) bool {
		return len(records) == 1 &&
			records[0].Status == incentive.StatusApproved &&
			records[0].ApprovedBy != nil && *records[0].ApprovedBy == approver
	})).Run(func(args mock.Arguments) {
		records := args.Get(1).([]incentive.BonusRecord)
		awarded = &records[0]
	}).Return(nil).Once()

	result, err := recordService.Approve(ctx, businessID, approver, BulkRecordActionRequest{
		RecordIDs: []uuid.UUID{awarded.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Skipped)

	// payout
	payer := uuid.New()
	recordRepo.On("FindByIDs", ctx, businessID, []uuid.UUID{awarded.ID}).
		Return([]incentive.BonusRecord{*awarded}, nil).Once()
	recordRepo.On("UpdateBatch", ctx, mock.MatchedBy(func(records []incentive.BonusRecord) bool {
		return len(records) == 1 &&
			records[0].Status == incentive.StatusPaid &&
			records[0].PaidBy != nil && *records[0].PaidBy == payer &&
			records[0].PaymentReference == "MM-20250601-001"
	})).Return(nil).Once()

	result, err = recordService.Pay(ctx, businessID, payer, BulkRecordActionRequest{
		RecordIDs:        []uuid.UUID{awarded.ID},
		PaymentReference: "MM-20250601-001",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	recordRepo.AssertExpectations(t)
}
