package incentive

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/credit"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/party"
	"github.com/paylater/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BonusEventHandler listens for qualifying business events and feeds them to
// the award service. A missing or inactive staff member simply earns nothing;
// the originating action has already succeeded by the time we run.
type BonusEventHandler struct {
	awardService *AwardService
	staffRepo    party.StaffMemberRepository
	logger       *zap.Logger
}

// NewBonusEventHandler creates a new handler for award-triggering events
func NewBonusEventHandler(
	awardService *AwardService,
	staffRepo party.StaffMemberRepository,
	logger *zap.Logger,
) *BonusEventHandler {
	return &BonusEventHandler{
		awardService: awardService,
		staffRepo:    staffRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *BonusEventHandler) EventTypes() []string {
	return []string{
		credit.EventTypePaymentConfirmed,
		credit.EventTypePurchaseCreated,
		credit.EventTypePurchaseSettled,
		party.EventTypeCustomerCreated,
	}
}

// Handle fans one business event out into zero or more trigger inputs and
// runs the award calculation for each
func (h *BonusEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *credit.PaymentConfirmedEvent:
		return h.handlePaymentConfirmed(ctx, e)
	case *credit.PurchaseCreatedEvent:
		return h.handlePurchaseCreated(ctx, e)
	case *credit.PurchaseSettledEvent:
		return h.handlePurchaseSettled(ctx, e)
	case *party.CustomerCreatedEvent:
		return h.handleCustomerCreated(ctx, e)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (h *BonusEventHandler) handlePaymentConfirmed(ctx context.Context, e *credit.PaymentConfirmedEvent) error {
	staff := h.resolveStaff(ctx, e.BusinessID(), e.CollectorID)
	if staff == nil {
		return nil
	}

	base := in(e.BusinessID(), e.ShopID, staff, &e.PaymentID, e.Reference, e.Amount)

	triggers := []incentive.TriggerType{incentive.TriggerCollection}
	if e.OnTime {
		triggers = append(triggers, incentive.TriggerOnTimeCollection)
	}
	if e.Recovered {
		triggers = append(triggers, incentive.TriggerRecovery)
	}

	for _, trigger := range triggers {
		input := base
		input.Trigger = trigger
		if _, err := h.awardService.CalculateAwards(ctx, input); err != nil {
			h.logger.Error("award calculation failed",
				zap.String("trigger", string(trigger)),
				zap.String("payment_id", e.PaymentID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (h *BonusEventHandler) handlePurchaseCreated(ctx context.Context, e *credit.PurchaseCreatedEvent) error {
	staff := h.resolveStaff(ctx, e.BusinessID(), e.SoldByStaffID)
	if staff == nil {
		return nil
	}

	input := in(e.BusinessID(), e.ShopID, staff, &e.PurchaseID, "", e.TotalAmount)
	input.Trigger = incentive.TriggerSale

	_, err := h.awardService.CalculateAwards(ctx, input)
	return err
}

func (h *BonusEventHandler) handlePurchaseSettled(ctx context.Context, e *credit.PurchaseSettledEvent) error {
	staff := h.resolveStaff(ctx, e.BusinessID(), e.AssignedCollectorID)
	if staff == nil {
		return nil
	}

	input := in(e.BusinessID(), e.ShopID, staff, &e.PurchaseID, "", e.TotalAmount)
	input.Trigger = incentive.TriggerFullPayment

	_, err := h.awardService.CalculateAwards(ctx, input)
	return err
}

func (h *BonusEventHandler) handleCustomerCreated(ctx context.Context, e *party.CustomerCreatedEvent) error {
	staff := h.resolveStaff(ctx, e.BusinessID(), e.CreatedByStaffID)
	if staff == nil {
		return nil
	}

	// Count-based trigger: the base amount is one registered customer
	input := in(e.BusinessID(), e.ShopID, staff, &e.CustomerID, e.CustomerName, decimal.NewFromInt(1))
	input.Trigger = incentive.TriggerCustomerCreated

	_, err := h.awardService.CalculateAwards(ctx, input)
	return err
}

// resolveStaff loads the staff member an event credits. Nil means no award:
// the event carries no staff link, the member is gone, or they are inactive.
func (h *BonusEventHandler) resolveStaff(ctx context.Context, businessID uuid.UUID, staffID *uuid.UUID) *incentive.StaffInfo {
	if staffID == nil {
		return nil
	}
	member, err := h.staffRepo.FindByID(ctx, businessID, *staffID)
	if err != nil {
		h.logger.Error("failed to load staff member for award",
			zap.String("staff_member_id", staffID.String()),
			zap.Error(err),
		)
		return nil
	}
	if member == nil {
		h.logger.Warn("event references unknown staff member, skipping award",
			zap.String("staff_member_id", staffID.String()),
		)
		return nil
	}
	if !member.Active {
		return nil
	}
	info := member.Info()
	return &info
}

func in(businessID uuid.UUID, shopID *uuid.UUID, staff *incentive.StaffInfo, sourceID *uuid.UUID, sourceRef string, base decimal.Decimal) incentive.TriggerInput {
	if shopID == nil {
		shopID = staff.ShopID
	}
	return incentive.TriggerInput{
		BusinessID:    businessID,
		ShopID:        shopID,
		StaffMemberID: staff.ID,
		StaffName:     staff.Name,
		StaffRole:     staff.Role,
		SourceID:      sourceID,
		SourceRef:     sourceRef,
		BaseAmount:    base,
	}
}
