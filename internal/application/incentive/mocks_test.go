package incentive

import (
	"context"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockBonusRuleRepository is a mock implementation of BonusRuleRepository
type MockBonusRuleRepository struct {
	mock.Mock
}

func (m *MockBonusRuleRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*incentive.BonusRule, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*incentive.BonusRule), args.Error(1)
}

func (m *MockBonusRuleRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter incentive.BonusRuleFilter) ([]incentive.BonusRule, int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]incentive.BonusRule), args.Get(1).(int64), args.Error(2)
}

func (m *MockBonusRuleRepository) FindMatching(ctx context.Context, businessID uuid.UUID, trigger incentive.TriggerType, role incentive.StaffRole, shopID *uuid.UUID) ([]incentive.BonusRule, error) {
	args := m.Called(ctx, businessID, trigger, role, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]incentive.BonusRule), args.Error(1)
}

func (m *MockBonusRuleRepository) FindTargetRules(ctx context.Context, businessID uuid.UUID) ([]incentive.BonusRule, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]incentive.BonusRule), args.Error(1)
}

func (m *MockBonusRuleRepository) Save(ctx context.Context, rule *incentive.BonusRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockBonusRuleRepository) Update(ctx context.Context, rule *incentive.BonusRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockBonusRuleRepository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	args := m.Called(ctx, businessID, id)
	return args.Error(0)
}

func (m *MockBonusRuleRepository) HasRecords(ctx context.Context, ruleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ruleID)
	return args.Bool(0), args.Error(1)
}

// MockBonusRecordRepository is a mock implementation of BonusRecordRepository
type MockBonusRecordRepository struct {
	mock.Mock
}

func (m *MockBonusRecordRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*incentive.BonusRecord, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*incentive.BonusRecord), args.Error(1)
}

func (m *MockBonusRecordRepository) FindByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]incentive.BonusRecord, error) {
	args := m.Called(ctx, businessID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]incentive.BonusRecord), args.Error(1)
}

func (m *MockBonusRecordRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter incentive.BonusRecordFilter) ([]incentive.BonusRecord, int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]incentive.BonusRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockBonusRecordRepository) SumAwarded(ctx context.Context, ruleID, staffMemberID uuid.UUID, period incentive.Period, statuses []incentive.BonusStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, ruleID, staffMemberID, period, statuses)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBonusRecordRepository) ExistsForPeriod(ctx context.Context, ruleID, staffMemberID uuid.UUID, period incentive.Period) (bool, error) {
	args := m.Called(ctx, ruleID, staffMemberID, period)
	return args.Bool(0), args.Error(1)
}

func (m *MockBonusRecordRepository) Create(ctx context.Context, record *incentive.BonusRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBonusRecordRepository) CreateCapped(ctx context.Context, record *incentive.BonusRecord, cap *decimal.Decimal) error {
	args := m.Called(ctx, record, cap)
	return args.Error(0)
}

func (m *MockBonusRecordRepository) Update(ctx context.Context, record *incentive.BonusRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBonusRecordRepository) UpdateBatch(ctx context.Context, records []incentive.BonusRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// MockStaffDirectory is a mock implementation of StaffDirectory
type MockStaffDirectory struct {
	mock.Mock
}

func (m *MockStaffDirectory) ActiveByRole(ctx context.Context, businessID uuid.UUID, role incentive.StaffRole, shopID *uuid.UUID) ([]incentive.StaffInfo, error) {
	args := m.Called(ctx, businessID, role, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]incentive.StaffInfo), args.Error(1)
}

// MockPerformanceReader is a mock implementation of PerformanceReader
type MockPerformanceReader struct {
	mock.Mock
}

func (m *MockPerformanceReader) CollectionsTotal(ctx context.Context, businessID, staffMemberID uuid.UUID, period incentive.Period) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, staffMemberID, period)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPerformanceReader) ShopSalesTotal(ctx context.Context, businessID, shopID uuid.UUID, period incentive.Period) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, shopID, period)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPerformanceReader) DefaultCount(ctx context.Context, businessID, staffMemberID uuid.UUID, period incentive.Period) (int64, error) {
	args := m.Called(ctx, businessID, staffMemberID, period)
	return args.Get(0).(int64), args.Error(1)
}

// MockStaffMemberRepository is a mock implementation of party.StaffMemberRepository
type MockStaffMemberRepository struct {
	mock.Mock
}

func (m *MockStaffMemberRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*party.StaffMember, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.StaffMember), args.Error(1)
}

func (m *MockStaffMemberRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]party.StaffMember, int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]party.StaffMember), args.Get(1).(int64), args.Error(2)
}

func (m *MockStaffMemberRepository) FindActiveByRole(ctx context.Context, businessID uuid.UUID, role incentive.StaffRole, shopID *uuid.UUID) ([]party.StaffMember, error) {
	args := m.Called(ctx, businessID, role, shopID)
	return args.Get(0).([]party.StaffMember), args.Error(1)
}

func (m *MockStaffMemberRepository) Save(ctx context.Context, staff *party.StaffMember) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffMemberRepository) Update(ctx context.Context, staff *party.StaffMember) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffMemberRepository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	args := m.Called(ctx, businessID, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

var _ shared.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockAuditTrail records entries for assertions
type MockAuditTrail struct {
	Entries []shared.AuditEntry
}

func (m *MockAuditTrail) Record(_ context.Context, entry shared.AuditEntry) {
	m.Entries = append(m.Entries, entry)
}
