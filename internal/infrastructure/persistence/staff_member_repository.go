package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStaffMemberRepository implements StaffMemberRepository using GORM.
// It also serves as the incentive engine's StaffDirectory.
type GormStaffMemberRepository struct {
	db *gorm.DB
}

// NewGormStaffMemberRepository creates a new GormStaffMemberRepository
func NewGormStaffMemberRepository(db *gorm.DB) *GormStaffMemberRepository {
	return &GormStaffMemberRepository{db: db}
}

// FindByID finds a staff member by ID within a business
func (r *GormStaffMemberRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*party.StaffMember, error) {
	var member party.StaffMember
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// FindAll finds all staff members for a business
func (r *GormStaffMemberRepository) FindAll(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]party.StaffMember, int64, error) {
	query := r.db.WithContext(ctx).Model(&party.StaffMember{}).
		Where("business_id = ?", businessID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []party.StaffMember
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// FindActiveByRole finds active staff with the given role, optionally
// limited to one shop
func (r *GormStaffMemberRepository) FindActiveByRole(ctx context.Context, businessID uuid.UUID, role incentive.StaffRole, shopID *uuid.UUID) ([]party.StaffMember, error) {
	query := r.db.WithContext(ctx).
		Where("business_id = ? AND active = ? AND role = ?", businessID, true, role)
	if shopID != nil {
		query = query.Where("shop_id = ?", *shopID)
	}

	var members []party.StaffMember
	if err := query.Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ActiveByRole implements incentive.StaffDirectory
func (r *GormStaffMemberRepository) ActiveByRole(ctx context.Context, businessID uuid.UUID, role incentive.StaffRole, shopID *uuid.UUID) ([]incentive.StaffInfo, error) {
	members, err := r.FindActiveByRole(ctx, businessID, role, shopID)
	if err != nil {
		return nil, err
	}
	infos := make([]incentive.StaffInfo, 0, len(members))
	for i := range members {
		infos = append(infos, members[i].Info())
	}
	return infos, nil
}

// Save persists a new staff member
func (r *GormStaffMemberRepository) Save(ctx context.Context, staff *party.StaffMember) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

// Update persists changes to an existing staff member
func (r *GormStaffMemberRepository) Update(ctx context.Context, staff *party.StaffMember) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

// Delete removes a staff member
func (r *GormStaffMemberRepository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		Delete(&party.StaffMember{}).Error
}
