package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const CleanupAuditEventsQueue = "cleanup_audit_events"

// AuditEventCleaner deletes audit events older than a retention period.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// MaintenanceLogger records the outcome of a maintenance run in the audit trail.
type MaintenanceLogger interface {
	LogMaintenance(action, description string, err error)
}

// CleanupAuditEventsTask removes audit events older than RetentionDays.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        CleanupAuditEventsQueue,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAuditEventsProcessor deletes expired events. A task without a
// retention falls back to defaultDays.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, defaultDays int) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		days := task.RetentionDays
		if days <= 0 {
			days = defaultDays
		}
		if days <= 0 {
			days = DefaultConfig().AuditRetentionDays
		}

		deleted, err := cleaner.DeleteOldEvents(ctx, time.Duration(days)*24*time.Hour)
		if err != nil {
			return fmt.Errorf("cleanup audit events: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d audit events older than %d days", deleted, days)
		return nil
	}
}

// NewCleanupAuditEventsQueue creates the queue that deletes old audit
// events. defaultDays applies when a task carries no retention.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, defaultDays int) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, defaultDays))
}
