package audit

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/librarydesk/internal/database"
	auditRepo "github.com/mrlokans/librarydesk/internal/database/audit"
	"github.com/mrlokans/librarydesk/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "audit.db"), database.WithLogLevel("silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := auditRepo.NewRepository(db.DB)
	svc := NewService(repo)

	return svc, db.DB
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "book_create",
		Description: "Added book Dune",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(context.Background(), event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "book_create", saved.Action)
}

func TestService_LogWrite(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful write", func(t *testing.T) {
		id := uint(42)
		svc.LogWrite(entities.AuditEventDelete, "book", &id, "Deleted book 42", nil)
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "book_delete").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditEventDelete, event.EventType)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, "book", event.EntityType)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, uint(42), *event.EntityID)
	})

	t.Run("failed write", func(t *testing.T) {
		svc.LogWrite(entities.AuditEventCreate, "member", nil, "Add member", errors.New("database is locked"))
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "member_create").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "database is locked")
		assert.Nil(t, event.EntityID)
	})
}

func TestService_LogMaintenance(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogMaintenance("overdue_scan", "Found 2 overdue transactions", nil)
	svc.Wait()

	var event entities.AuditEvent
	err := db.Where("action = ?", "overdue_scan").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventMaintenance, event.EventType)
	assert.Contains(t, event.Description, "2 overdue")
}

func TestService_GetEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := svc.Log(ctx, &entities.AuditEvent{
			EventType:  entities.AuditEventUpdate,
			Action:     "member_update",
			EntityType: "member",
			Status:     entities.AuditStatusSuccess,
		})
		require.NoError(t, err)
	}

	events, total, err := svc.GetEvents(ctx, "member", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, events, 5)

	events, total, err = svc.GetEvents(ctx, "book", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, events)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)

	oldEvent := &entities.AuditEvent{
		EventType: entities.AuditEventCreate,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(oldEvent).Error)

	newEvent := &entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "new",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(newEvent).Error)

	deleted, err := svc.DeleteOldEvents(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []entities.AuditEvent
	db.Find(&remaining)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Action)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a very long string", 10, "this is..."},
		{"", 5, ""},
	}

	for _, tc := range tests {
		result := truncate(tc.input, tc.maxLen)
		assert.Equal(t, tc.expected, result)
	}
}
