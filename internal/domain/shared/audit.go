package shared

import (
	"context"

	"github.com/google/uuid"
)

// AuditEntry captures one administrative action for the audit trail
type AuditEntry struct {
	BusinessID uuid.UUID
	ActorID    uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Detail     string
}

// AuditTrail records administrative actions. Implementations must never
// fail the calling operation; recording is best effort.
type AuditTrail interface {
	Record(ctx context.Context, entry AuditEntry)
}
