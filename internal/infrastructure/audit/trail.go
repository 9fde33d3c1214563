package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paylater/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Entry is the persisted form of one audited administrative action
type Entry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID `gorm:"type:uuid;index"`
	Action     string    `gorm:"type:varchar(100);not null;index"`
	EntityType string    `gorm:"type:varchar(50);not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;index"`
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "audit_entries"
}

// GormTrail writes audit entries to the database. Failures are logged and
// dropped; auditing never blocks the action being audited.
type GormTrail struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormTrail creates a new GormTrail
func NewGormTrail(db *gorm.DB, logger *zap.Logger) *GormTrail {
	return &GormTrail{db: db, logger: logger}
}

// Record implements shared.AuditTrail
func (t *GormTrail) Record(ctx context.Context, entry shared.AuditEntry) {
	row := Entry{
		ID:         uuid.New(),
		BusinessID: entry.BusinessID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Detail:     entry.Detail,
		CreatedAt:  time.Now(),
	}
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		t.logger.Warn("failed to record audit entry",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
	}
}
