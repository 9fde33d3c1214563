package credit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/credit"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/paylater/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPurchaseRepository is a mock implementation of PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*credit.Purchase, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter credit.PurchaseFilter) ([]credit.Purchase, int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]credit.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) FindOverdue(ctx context.Context, businessID uuid.UUID, asOf time.Time) ([]credit.Purchase, error) {
	args := m.Called(ctx, businessID, asOf)
	return args.Get(0).([]credit.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *credit.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Update(ctx context.Context, purchase *credit.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*credit.Payment, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter credit.PaymentFilter) ([]credit.Payment, int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]credit.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *credit.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *credit.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
	published []shared.DomainEvent
}

var _ shared.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.published = append(m.published, events...)
	args := m.Called(ctx, events)
	return args.Error(0)
}

func activePurchase(t *testing.T, businessID uuid.UUID, total float64) *credit.Purchase {
	t.Helper()
	collector := uuid.New()
	purchase, err := credit.NewPurchase(businessID, "PUR-0001", uuid.New(), "Ama Mensah",
		nil, nil, &collector, valueobject.NewMoneyGHSFromFloat(total), nil)
	require.NoError(t, err)
	purchase.ClearDomainEvents()
	return purchase
}

func TestPaymentService_Record(t *testing.T) {
	businessID := uuid.New()
	ctx := context.Background()

	t.Run("defaults collector to the assigned one and flags recovery", func(t *testing.T) {
		purchaseRepo := new(MockPurchaseRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(paymentRepo, purchaseRepo, zap.NewNop())

		purchase := activePurchase(t, businessID, 1000)
		require.NoError(t, purchase.MarkDefaulted())
		purchase.ClearDomainEvents()

		purchaseRepo.On("FindByID", ctx, businessID, purchase.ID).Return(purchase, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*credit.Payment")).Return(nil)

		resp, err := service.Record(ctx, businessID, RecordPaymentRequest{
			PurchaseID: purchase.ID,
			Amount:     decimal.NewFromInt(200),
		})
		require.NoError(t, err)
		assert.Equal(t, string(credit.PaymentPending), resp.Status)
		assert.Equal(t, purchase.AssignedCollectorID, resp.CollectorID)
		assert.True(t, resp.WasRecovery, "payment against defaulted purchase is a recovery")
	})

	t.Run("rejects collection against settled purchase", func(t *testing.T) {
		purchaseRepo := new(MockPurchaseRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(paymentRepo, purchaseRepo, zap.NewNop())

		purchase := activePurchase(t, businessID, 100)
		_, err := purchase.ApplyPayment(decimal.NewFromInt(100), nil)
		require.NoError(t, err)
		purchase.ClearDomainEvents()

		purchaseRepo.On("FindByID", ctx, businessID, purchase.ID).Return(purchase, nil)

		_, err = service.Record(ctx, businessID, RecordPaymentRequest{
			PurchaseID: purchase.ID,
			Amount:     decimal.NewFromInt(50),
		})
		assert.Error(t, err)
		paymentRepo.AssertNotCalled(t, "Save")
	})
}

func TestPaymentService_Confirm(t *testing.T) {
	businessID := uuid.New()
	ctx := context.Background()

	t.Run("confirmation applies balance and publishes PaymentConfirmed", func(t *testing.T) {
		purchaseRepo := new(MockPurchaseRepository)
		paymentRepo := new(MockPaymentRepository)
		publisher := new(MockEventPublisher)
		service := NewPaymentService(paymentRepo, purchaseRepo, zap.NewNop())
		service.SetEventPublisher(publisher)

		purchase := activePurchase(t, businessID, 1000)
		payment, err := credit.NewPayment(businessID, purchase.ID, purchase.CustomerID,
			nil, purchase.AssignedCollectorID, valueobject.NewMoneyGHSFromFloat(400),
			"CASH", "", nil, time.Now(), false)
		require.NoError(t, err)

		paymentRepo.On("FindByID", ctx, businessID, payment.ID).Return(payment, nil)
		purchaseRepo.On("FindByID", ctx, businessID, purchase.ID).Return(purchase, nil)
		paymentRepo.On("Update", ctx, payment).Return(nil)
		purchaseRepo.On("Update", ctx, purchase).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Confirm(ctx, businessID, payment.ID, uuid.New(), nil)
		require.NoError(t, err)
		assert.Equal(t, string(credit.PaymentConfirmed), resp.Status)
		assert.True(t, purchase.PaidAmount.Equal(decimal.NewFromInt(400)))

		require.Len(t, publisher.published, 1)
		assert.Equal(t, credit.EventTypePaymentConfirmed, publisher.published[0].EventType())
	})

	t.Run("final payment also publishes PurchaseSettled", func(t *testing.T) {
		purchaseRepo := new(MockPurchaseRepository)
		paymentRepo := new(MockPaymentRepository)
		publisher := new(MockEventPublisher)
		service := NewPaymentService(paymentRepo, purchaseRepo, zap.NewNop())
		service.SetEventPublisher(publisher)

		purchase := activePurchase(t, businessID, 400)
		payment, err := credit.NewPayment(businessID, purchase.ID, purchase.CustomerID,
			nil, purchase.AssignedCollectorID, valueobject.NewMoneyGHSFromFloat(400),
			"CASH", "", nil, time.Now(), false)
		require.NoError(t, err)

		paymentRepo.On("FindByID", ctx, businessID, payment.ID).Return(payment, nil)
		purchaseRepo.On("FindByID", ctx, businessID, purchase.ID).Return(purchase, nil)
		paymentRepo.On("Update", ctx, payment).Return(nil)
		purchaseRepo.On("Update", ctx, purchase).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		_, err = service.Confirm(ctx, businessID, payment.ID, uuid.New(), nil)
		require.NoError(t, err)

		require.Len(t, publisher.published, 2)
		assert.Equal(t, credit.EventTypePaymentConfirmed, publisher.published[0].EventType())
		assert.Equal(t, credit.EventTypePurchaseSettled, publisher.published[1].EventType())
	})

	t.Run("already confirmed payment cannot be confirmed again", func(t *testing.T) {
		purchaseRepo := new(MockPurchaseRepository)
		paymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(paymentRepo, purchaseRepo, zap.NewNop())

		purchase := activePurchase(t, businessID, 1000)
		payment, err := credit.NewPayment(businessID, purchase.ID, purchase.CustomerID,
			nil, nil, valueobject.NewMoneyGHSFromFloat(100), "CASH", "", nil, time.Now(), false)
		require.NoError(t, err)
		require.NoError(t, payment.Confirm(uuid.New()))
		payment.ClearDomainEvents()

		paymentRepo.On("FindByID", ctx, businessID, payment.ID).Return(payment, nil)
		purchaseRepo.On("FindByID", ctx, businessID, purchase.ID).Return(purchase, nil)

		_, err = service.Confirm(ctx, businessID, payment.ID, uuid.New(), nil)
		assert.Error(t, err)
		paymentRepo.AssertNotCalled(t, "Update")
	})
}
