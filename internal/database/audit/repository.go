package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/librarydesk/internal/database"
	"github.com/mrlokans/librarydesk/internal/entities"
)

const defaultPageSize = 50

// Repository stores audit events.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		return conn.Create(event).Error
	})
}

// GetEvents retrieves paginated audit events, most recent first.
// An empty entityType matches every entity.
func (r *Repository) GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	events := []entities.AuditEvent{}
	var total int64

	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		query := conn.Model(&entities.AuditEvent{})
		if entityType != "" {
			query = query.Where("entity_type = ?", entityType)
		}
		if err := query.Count(&total).Error; err != nil {
			return err
		}
		return query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	var deleted int64
	err := database.WithConnection(ctx, r.db, func(conn *gorm.DB) error {
		result := conn.Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
