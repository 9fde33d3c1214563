package incentive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/incentive"
	"github.com/paylater/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RecordService manages bonus record listings and the approval workflow.
// Bulk actions skip records that are not in an actionable status instead of
// failing the whole batch.
type RecordService struct {
	recordRepo     incentive.BonusRecordRepository
	eventPublisher shared.EventPublisher
	audit          shared.AuditTrail
	logger         *zap.Logger
}

// NewRecordService creates a new record service
func NewRecordService(recordRepo incentive.BonusRecordRepository, logger *zap.Logger) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *RecordService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetAuditTrail sets the audit trail recorder
func (s *RecordService) SetAuditTrail(trail shared.AuditTrail) {
	s.audit = trail
}

// Get returns one bonus record
func (s *RecordService) Get(ctx context.Context, businessID, recordID uuid.UUID) (*BonusRecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, businessID, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToBonusRecordResponse(record)
	return &resp, nil
}

// List returns a filtered page of bonus records
func (s *RecordService) List(ctx context.Context, businessID uuid.UUID, req ListBonusRecordsRequest) (*shared.Paginated[BonusRecordResponse], error) {
	filter, err := toRecordFilter(req)
	if err != nil {
		return nil, err
	}

	records, total, err := s.recordRepo.FindAll(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]BonusRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, ToBonusRecordResponse(&records[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Approve moves the named PENDING records to APPROVED
func (s *RecordService) Approve(ctx context.Context, businessID, actorID uuid.UUID, req BulkRecordActionRequest) (*BulkRecordActionResponse, error) {
	return s.bulkTransition(ctx, businessID, req.RecordIDs, "bonus_record.approve", func(r *incentive.BonusRecord) error {
		return r.Approve(actorID)
	})
}

// Pay marks the named records as paid out
func (s *RecordService) Pay(ctx context.Context, businessID, actorID uuid.UUID, req BulkRecordActionRequest) (*BulkRecordActionResponse, error) {
	return s.bulkTransition(ctx, businessID, req.RecordIDs, "bonus_record.pay", func(r *incentive.BonusRecord) error {
		return r.MarkPaid(actorID, req.PaymentReference)
	})
}

// Reject declines the named records
func (s *RecordService) Reject(ctx context.Context, businessID, actorID uuid.UUID, req BulkRecordActionRequest) (*BulkRecordActionResponse, error) {
	return s.bulkTransition(ctx, businessID, req.RecordIDs, "bonus_record.reject", func(r *incentive.BonusRecord) error {
		return r.Reject(actorID, req.Reason)
	})
}

func (s *RecordService) bulkTransition(
	ctx context.Context,
	businessID uuid.UUID,
	ids []uuid.UUID,
	action string,
	transition func(*incentive.BonusRecord) error,
) (*BulkRecordActionResponse, error) {
	records, err := s.recordRepo.FindByIDs(ctx, businessID, ids)
	if err != nil {
		return nil, err
	}

	var updated []incentive.BonusRecord
	for i := range records {
		record := &records[i]
		if err := transition(record); err != nil {
			// wrong-status records are skipped, not fatal
			s.logger.Debug("record skipped in bulk action",
				zap.String("record_id", record.ID.String()),
				zap.String("action", action),
				zap.String("status", string(record.Status)),
			)
			continue
		}
		updated = append(updated, *record)
	}

	if len(updated) > 0 {
		if err := s.recordRepo.UpdateBatch(ctx, updated); err != nil {
			return nil, err
		}
		for i := range updated {
			s.publishEvents(ctx, &updated[i])
			s.recordAudit(ctx, businessID, action, &updated[i])
		}
	}

	return &BulkRecordActionResponse{
		Requested: len(ids),
		Updated:   len(updated),
		Skipped:   len(ids) - len(updated),
	}, nil
}

func (s *RecordService) publishEvents(ctx context.Context, record *incentive.BonusRecord) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range record.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish bonus event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	record.ClearDomainEvents()
}

func (s *RecordService) recordAudit(ctx context.Context, businessID uuid.UUID, action string, record *incentive.BonusRecord) {
	if s.audit == nil {
		return
	}
	var actor uuid.UUID
	switch {
	case record.PaidBy != nil:
		actor = *record.PaidBy
	case record.RejectedBy != nil:
		actor = *record.RejectedBy
	case record.ApprovedBy != nil:
		actor = *record.ApprovedBy
	}
	s.audit.Record(ctx, shared.AuditEntry{
		BusinessID: businessID,
		ActorID:    actor,
		Action:     action,
		EntityType: "BonusRecord",
		EntityID:   record.ID,
		Detail:     record.AwardedAmount.String(),
	})
}

func toRecordFilter(req ListBonusRecordsRequest) (incentive.BonusRecordFilter, error) {
	filter := incentive.BonusRecordFilter{
		Filter: normalizeFilter(req.Page, req.PageSize),
	}

	parseID := func(raw *string, field string) (*uuid.UUID, error) {
		if raw == nil {
			return nil, nil
		}
		id, err := uuid.Parse(*raw)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ID", fmt.Sprintf("%s is not a valid UUID", field))
		}
		return &id, nil
	}

	var err error
	if filter.RuleID, err = parseID(req.RuleID, "rule_id"); err != nil {
		return filter, err
	}
	if filter.StaffMemberID, err = parseID(req.StaffMemberID, "staff_member_id"); err != nil {
		return filter, err
	}
	if filter.ShopID, err = parseID(req.ShopID, "shop_id"); err != nil {
		return filter, err
	}

	if req.Status != nil {
		status := incentive.BonusStatus(*req.Status)
		if !status.IsValid() {
			return filter, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown bonus status: %s", *req.Status))
		}
		filter.Status = &status
	}
	if req.Trigger != nil {
		trigger := incentive.TriggerType(*req.Trigger)
		if !trigger.IsValid() {
			return filter, shared.NewDomainError("INVALID_TRIGGER", fmt.Sprintf("Unknown trigger type: %s", *req.Trigger))
		}
		filter.Trigger = &trigger
	}

	parseTime := func(raw *string, field string) (*time.Time, error) {
		if raw == nil {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, *raw)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_TIME", fmt.Sprintf("%s must be RFC3339", field))
		}
		return &t, nil
	}
	if filter.From, err = parseTime(req.From, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = parseTime(req.To, "to"); err != nil {
		return filter, err
	}

	return filter, nil
}
