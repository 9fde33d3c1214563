package party

import (
	"context"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShopService manages the business's retail locations
type ShopService struct {
	shopRepo party.ShopRepository
	logger   *zap.Logger
}

// NewShopService creates a new shop service
func NewShopService(shopRepo party.ShopRepository, logger *zap.Logger) *ShopService {
	return &ShopService{
		shopRepo: shopRepo,
		logger:   logger,
	}
}

// Create opens a new shop
func (s *ShopService) Create(ctx context.Context, businessID uuid.UUID, req CreateShopRequest) (*ShopResponse, error) {
	shop, err := party.NewShop(businessID, req.Name, req.Location)
	if err != nil {
		return nil, err
	}
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}
	resp := ToShopResponse(shop)
	return &resp, nil
}

// Get returns one shop
func (s *ShopService) Get(ctx context.Context, businessID, shopID uuid.UUID) (*ShopResponse, error) {
	shop, err := s.shopRepo.FindByID(ctx, businessID, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToShopResponse(shop)
	return &resp, nil
}

// List returns a page of shops
func (s *ShopService) List(ctx context.Context, businessID uuid.UUID, page, pageSize int) (*shared.Paginated[ShopResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 && pageSize <= 200 {
		filter.PageSize = pageSize
	}

	shops, total, err := s.shopRepo.FindAll(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ShopResponse, 0, len(shops))
	for i := range shops {
		items = append(items, ToShopResponse(&shops[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
