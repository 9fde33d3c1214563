package credit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/credit"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/paylater/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// PurchaseService manages the BNPL purchase book
type PurchaseService struct {
	purchaseRepo   credit.PurchaseRepository
	customerRepo   party.CustomerRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo credit.PurchaseRepository,
	customerRepo party.CustomerRepository,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create books a new BNPL sale. Publishing PurchaseCreated lets sale
// incentives fire for the selling staff member.
func (s *PurchaseService) Create(ctx context.Context, businessID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, businessID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}

	number := generatePurchaseNumber(time.Now())
	purchase, err := credit.NewPurchase(
		businessID,
		number,
		customer.ID,
		customer.Name,
		req.ShopID,
		req.SoldByStaffID,
		req.AssignedCollectorID,
		valueobject.NewMoneyGHS(req.TotalAmount),
		req.NextDueDate,
	)
	if err != nil {
		return nil, err
	}
	purchase.Remark = req.Remark

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase.GetDomainEvents())
	purchase.ClearDomainEvents()

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Get returns one purchase
func (s *PurchaseService) Get(ctx context.Context, businessID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, businessID, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// List returns a filtered page of purchases
func (s *PurchaseService) List(ctx context.Context, businessID uuid.UUID, req ListPurchasesRequest) (*shared.Paginated[PurchaseResponse], error) {
	filter := credit.PurchaseFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 200 {
		filter.PageSize = req.PageSize
	}
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ID", "customer_id is not a valid UUID")
		}
		filter.CustomerID = &id
	}
	if req.ShopID != nil {
		id, err := uuid.Parse(*req.ShopID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ID", "shop_id is not a valid UUID")
		}
		filter.ShopID = &id
	}
	if req.Status != nil {
		status := credit.PurchaseStatus(*req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown purchase status: %s", *req.Status))
		}
		filter.Status = &status
	}

	purchases, total, err := s.purchaseRepo.FindAll(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, ToPurchaseResponse(&purchases[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// MarkDefaulted flags a purchase whose installments have lapsed and
// publishes PurchaseDefaulted
func (s *PurchaseService) MarkDefaulted(ctx context.Context, businessID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, businessID, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, shared.ErrNotFound
	}

	if err := purchase.MarkDefaulted(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase.GetDomainEvents())
	purchase.ClearDomainEvents()

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// SweepOverdue marks every active purchase past its due date as defaulted.
// Returns the number of purchases transitioned. Per-purchase failures are
// logged and the sweep continues.
func (s *PurchaseService) SweepOverdue(ctx context.Context, businessID uuid.UUID, asOf time.Time) (int, error) {
	overdue, err := s.purchaseRepo.FindOverdue(ctx, businessID, asOf)
	if err != nil {
		return 0, err
	}

	defaulted := 0
	for i := range overdue {
		purchase := &overdue[i]
		if err := purchase.MarkDefaulted(); err != nil {
			continue
		}
		if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
			s.logger.Error("failed to mark purchase defaulted",
				zap.String("purchase_id", purchase.ID.String()),
				zap.Error(err),
			)
			continue
		}
		s.publishEvents(ctx, purchase.GetDomainEvents())
		purchase.ClearDomainEvents()
		defaulted++
	}

	return defaulted, nil
}

func (s *PurchaseService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish purchase event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
}

// generatePurchaseNumber builds a time-prefixed purchase number. Uniqueness
// is enforced by the business+number index.
func generatePurchaseNumber(now time.Time) string {
	return fmt.Sprintf("PUR-%s-%s", now.Format("20060102"), uuid.NewString()[:8])
}
