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

func TestRuleService_Create(t *testing.T) {
	businessID := uuid.New()
	actorID := uuid.New()
	ctx := context.Background()

	t.Run("creates tiered rule and records audit entry", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		trail := &MockAuditTrail{}
		service := NewRuleService(ruleRepo, zap.NewNop())
		service.SetAuditTrail(trail)

		ruleRepo.On("Save", ctx, mock.AnythingOfType("*incentive.BonusRule")).Return(nil)

		resp, err := service.Create(ctx, businessID, actorID, CreateBonusRuleRequest{
			Name:        "Tiered collection commission",
			TargetRole:  "DEBT_COLLECTOR",
			Trigger:     "COLLECTION",
			Calculation: "PERCENTAGE",
			Value:       dec("2"),
			Tiers: []TierInput{
				{Min: dec("0"), Max: dec("1000"), Value: dec("2")},
				{Min: dec("1000"), Max: dec("0"), Value: dec("5")},
			},
			Period: "MONTHLY",
		})
		require.NoError(t, err)
		assert.Equal(t, "Tiered collection commission", resp.Name)
		assert.Len(t, resp.Tiers, 2)
		assert.True(t, resp.Active)

		require.Len(t, trail.Entries, 1)
		assert.Equal(t, "bonus_rule.create", trail.Entries[0].Action)
		assert.Equal(t, actorID, trail.Entries[0].ActorID)
	})

	t.Run("rejects unknown trigger", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		service := NewRuleService(ruleRepo, zap.NewNop())

		_, err := service.Create(ctx, businessID, actorID, CreateBonusRuleRequest{
			Name:        "Broken",
			TargetRole:  "DEBT_COLLECTOR",
			Trigger:     "BIRTHDAY",
			Calculation: "PERCENTAGE",
			Value:       dec("2"),
			Period:      "MONTHLY",
		})
		assert.Error(t, err)
		ruleRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects malformed tier schedule", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		service := NewRuleService(ruleRepo, zap.NewNop())

		_, err := service.Create(ctx, businessID, actorID, CreateBonusRuleRequest{
			Name:        "Bad tiers",
			TargetRole:  "DEBT_COLLECTOR",
			Trigger:     "COLLECTION",
			Calculation: "PERCENTAGE",
			Value:       dec("2"),
			Tiers: []TierInput{
				{Min: dec("500"), Max: dec("100"), Value: dec("2")},
			},
			Period: "MONTHLY",
		})
		assert.Error(t, err)
		ruleRepo.AssertNotCalled(t, "Save")
	})
}

func TestRuleService_Delete(t *testing.T) {
	businessID := uuid.New()
	actorID := uuid.New()
	ctx := context.Background()

	t.Run("rule with records is retired instead of deleted", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		service := NewRuleService(ruleRepo, zap.NewNop())

		rule := makeRule(t, businessID, nil)
		rule.ClearDomainEvents()

		ruleRepo.On("FindByID", ctx, businessID, rule.ID).Return(rule, nil)
		ruleRepo.On("HasRecords", ctx, rule.ID).Return(true, nil)
		ruleRepo.On("Update", ctx, rule).Return(nil)

		retired, err := service.Delete(ctx, businessID, actorID, rule.ID)
		require.NoError(t, err)
		assert.True(t, retired)
		assert.False(t, rule.Active)
		ruleRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("unused rule is removed", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		service := NewRuleService(ruleRepo, zap.NewNop())

		rule := makeRule(t, businessID, nil)
		ruleRepo.On("FindByID", ctx, businessID, rule.ID).Return(rule, nil)
		ruleRepo.On("HasRecords", ctx, rule.ID).Return(false, nil)
		ruleRepo.On("Delete", ctx, businessID, rule.ID).Return(nil)

		retired, err := service.Delete(ctx, businessID, actorID, rule.ID)
		require.NoError(t, err)
		assert.False(t, retired)
		ruleRepo.AssertExpectations(t)
	})

	t.Run("missing rule returns not found", func(t *testing.T) {
		ruleRepo := new(MockBonusRuleRepository)
		service := NewRuleService(ruleRepo, zap.NewNop())

		id := uuid.New()
		ruleRepo.On("FindByID", ctx, businessID, id).Return(nil, nil)

		_, err := service.Delete(ctx, businessID, actorID, id)
		assert.Error(t, err)
	})
}

func TestRuleService_SetActive(t *testing.T) {
	businessID := uuid.New()
	actorID := uuid.New()
	ctx := context.Background()

	ruleRepo := new(MockBonusRuleRepository)
	publisher := new(MockEventPublisher)
	service := NewRuleService(ruleRepo, zap.NewNop())
	service.SetEventPublisher(publisher)

	rule := makeRule(t, businessID, nil)
	rule.ClearDomainEvents()

	ruleRepo.On("FindByID", ctx, businessID, rule.ID).Return(rule, nil)
	ruleRepo.On("Update", ctx, rule).Return(nil)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := service.SetActive(ctx, businessID, actorID, rule.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.Active)

	// deactivation raises exactly one event
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestRuleService_List(t *testing.T) {
	businessID := uuid.New()
	ctx := context.Background()

	ruleRepo := new(MockBonusRuleRepository)
	service := NewRuleService(ruleRepo, zap.NewNop())

	trigger := "COLLECTION"
	active := true
	rule := makeRule(t, businessID, nil)

	ruleRepo.On("FindAll", ctx, businessID, mock.MatchedBy(func(f incentive.BonusRuleFilter) bool {
		return f.Trigger != nil && *f.Trigger == incentive.TriggerCollection && f.Active != nil && *f.Active
	})).Return([]incentive.BonusRule{*rule}, int64(1), nil)

	page, err := service.List(ctx, businessID, ListBonusRulesRequest{
		Page:     1,
		PageSize: 20,
		Trigger:  &trigger,
		Active:   &active,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, rule.Name, page.Items[0].Name)
}
