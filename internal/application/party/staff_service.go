package party

import (
	"context"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StaffService manages the staff roster
type StaffService struct {
	staffRepo party.StaffMemberRepository
	logger    *zap.Logger
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo party.StaffMemberRepository, logger *zap.Logger) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Create registers a new staff member
func (s *StaffService) Create(ctx context.Context, businessID uuid.UUID, req CreateStaffMemberRequest) (*StaffMemberResponse, error) {
	member, err := party.NewStaffMember(businessID, req.Name, incentive.StaffRole(req.Role), req.ShopID)
	if err != nil {
		return nil, err
	}
	member.Phone = req.Phone
	member.UserID = req.UserID

	if err := s.staffRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	resp := ToStaffMemberResponse(member)
	return &resp, nil
}

// Update edits a staff member's profile
func (s *StaffService) Update(ctx context.Context, businessID, staffID uuid.UUID, req UpdateStaffMemberRequest) (*StaffMemberResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, businessID, staffID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, shared.ErrNotFound
	}

	if err := member.Update(req.Name, incentive.StaffRole(req.Role), req.ShopID); err != nil {
		return nil, err
	}
	member.Phone = req.Phone

	if err := s.staffRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	resp := ToStaffMemberResponse(member)
	return &resp, nil
}

// SetActive toggles employment status. Inactive staff keep their historical
// bonus records but earn no new ones.
func (s *StaffService) SetActive(ctx context.Context, businessID, staffID uuid.UUID, active bool) (*StaffMemberResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, businessID, staffID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, shared.ErrNotFound
	}

	member.SetActive(active)
	if err := s.staffRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	resp := ToStaffMemberResponse(member)
	return &resp, nil
}

// Get returns one staff member
func (s *StaffService) Get(ctx context.Context, businessID, staffID uuid.UUID) (*StaffMemberResponse, error) {
	member, err := s.staffRepo.FindByID(ctx, businessID, staffID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToStaffMemberResponse(member)
	return &resp, nil
}

// List returns a page of staff members
func (s *StaffService) List(ctx context.Context, businessID uuid.UUID, page, pageSize int) (*shared.Paginated[StaffMemberResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 && pageSize <= 200 {
		filter.PageSize = pageSize
	}

	members, total, err := s.staffRepo.FindAll(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]StaffMemberResponse, 0, len(members))
	for i := range members {
		items = append(items, ToStaffMemberResponse(&members[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
