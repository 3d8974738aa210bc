package audit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/librarydesk/internal/database/audit"
	"github.com/mrlokans/librarydesk/internal/entities"
)

const maxErrorLen = 500

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event passed to LogAsync has been written.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogWrite records a create, update, delete, borrow or return of a library
// record. A nil entityID means the record was never assigned one.
func (s *Service) LogWrite(eventType entities.AuditEventType, entityType string, entityID *uint, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      fmt.Sprintf("%s_%s", entityType, eventType),
		Description: truncate(description, maxErrorLen),
		EntityType:  entityType,
		EntityID:    entityID,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}

	s.LogAsync(event)
}

// LogMaintenance records the outcome of a background maintenance run.
func (s *Service) LogMaintenance(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      action,
		Description: truncate(description, maxErrorLen),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events, optionally for one entity type.
func (s *Service) GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, entityType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
