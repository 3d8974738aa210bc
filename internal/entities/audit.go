package entities

import "time"

// AuditEventType classifies what an audit event records.
type AuditEventType string

const (
	AuditEventCreate      AuditEventType = "create"
	AuditEventUpdate      AuditEventType = "update"
	AuditEventDelete      AuditEventType = "delete"
	AuditEventBorrow      AuditEventType = "borrow"
	AuditEventReturn      AuditEventType = "return"
	AuditEventMaintenance AuditEventType = "maintenance"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent is one entry in the audit trail.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "book_create", "transaction_return"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  string         `gorm:"size:50" json:"entity_type"`  // "book", "member", "transaction"
	EntityID    *uint          `gorm:"index" json:"entity_id,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
