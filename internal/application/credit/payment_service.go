package credit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/credit"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/paylater/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// PaymentService records collected installments and runs the confirmation
// flow. Confirmation applies the payment to the purchase balance and
// publishes the events that drive collection incentives.
type PaymentService struct {
	paymentRepo    credit.PaymentRepository
	purchaseRepo   credit.PurchaseRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo credit.PaymentRepository,
	purchaseRepo credit.PurchaseRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		purchaseRepo: purchaseRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Record books a collected installment as PENDING confirmation
func (s *PaymentService) Record(ctx context.Context, businessID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, businessID, req.PurchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, shared.ErrNotFound
	}
	if purchase.Status == credit.PurchaseSettled || purchase.Status == credit.PurchaseCancelled {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot collect against %s purchase", purchase.Status))
	}

	collectorID := req.CollectorID
	if collectorID == nil {
		collectorID = purchase.AssignedCollectorID
	}

	collectedAt := time.Now()
	if req.CollectedAt != nil {
		collectedAt = *req.CollectedAt
	}

	payment, err := credit.NewPayment(
		businessID,
		purchase.ID,
		purchase.CustomerID,
		purchase.ShopID,
		collectorID,
		valueobject.NewMoneyGHS(req.Amount),
		req.Method,
		req.Reference,
		purchase.NextDueDate,
		collectedAt,
		purchase.Status == credit.PurchaseDefaulted,
	)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// Confirm verifies a pending payment, applies it to the purchase balance and
// publishes PaymentConfirmed (and PurchaseSettled when the balance clears).
func (s *PaymentService) Confirm(ctx context.Context, businessID, paymentID, confirmedBy uuid.UUID, nextDue *time.Time) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, businessID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}

	purchase, err := s.purchaseRepo.FindByID(ctx, businessID, payment.PurchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment references a missing purchase")
	}

	if err := payment.Confirm(confirmedBy); err != nil {
		return nil, err
	}
	if _, err := purchase.ApplyPayment(payment.Amount, nextDue); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return nil, err
	}

	// payment first so collection awards precede settlement awards
	s.publishEvents(ctx, payment.GetDomainEvents())
	payment.ClearDomainEvents()
	s.publishEvents(ctx, purchase.GetDomainEvents())
	purchase.ClearDomainEvents()

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// Void cancels a pending payment recorded in error
func (s *PaymentService) Void(ctx context.Context, businessID, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, businessID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}

	if err := payment.Void(); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// Get returns one payment
func (s *PaymentService) Get(ctx context.Context, businessID, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, businessID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// List returns a filtered page of payments
func (s *PaymentService) List(ctx context.Context, businessID uuid.UUID, req ListPaymentsRequest) (*shared.Paginated[PaymentResponse], error) {
	filter := credit.PaymentFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 200 {
		filter.PageSize = req.PageSize
	}
	if req.PurchaseID != nil {
		id, err := uuid.Parse(*req.PurchaseID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ID", "purchase_id is not a valid UUID")
		}
		filter.PurchaseID = &id
	}
	if req.CollectorID != nil {
		id, err := uuid.Parse(*req.CollectorID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ID", "collector_id is not a valid UUID")
		}
		filter.CollectorID = &id
	}
	if req.Status != nil {
		status := credit.PaymentStatus(*req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown payment status: %s", *req.Status))
		}
		filter.Status = &status
	}

	payments, total, err := s.paymentRepo.FindAll(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, ToPaymentResponse(&payments[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *PaymentService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish payment event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
}
