package party

import (
	"context"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService manages the customer register. Creating a customer
// publishes CustomerCreated so sign-up incentives can fire.
type CustomerService struct {
	customerRepo   party.CustomerRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo party.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, businessID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := party.NewCustomer(businessID, req.Name, req.Phone, req.ShopID, req.CreatedByStaffID)
	if err != nil {
		return nil, err
	}
	customer.GhanaCardNumber = req.GhanaCardNumber
	customer.Address = req.Address

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range customer.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish customer event",
					zap.String("event_type", event.EventType()),
					zap.Error(err),
				)
			}
		}
		customer.ClearDomainEvents()
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update edits a customer's profile
func (s *CustomerService) Update(ctx context.Context, businessID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, businessID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}

	if err := customer.Update(req.Name, req.Phone, req.GhanaCardNumber, req.Address); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Get returns one customer
func (s *CustomerService) Get(ctx context.Context, businessID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, businessID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, businessID uuid.UUID, page, pageSize int, search string) (*shared.Paginated[CustomerResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 && pageSize <= 200 {
		filter.PageSize = pageSize
	}
	filter.Search = search

	customers, total, err := s.customerRepo.FindAll(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, ToCustomerResponse(&customers[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
