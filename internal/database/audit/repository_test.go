package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookalchemy/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventAdd,
		Action:      "book_add",
		Description: "Added book: Dune",
		EntityType:  entities.EntryTypeBook,
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			EventType:   entities.AuditEventAdd,
			Action:      "author_add",
			Description: "Test event",
			Status:      entities.AuditStatusSuccess,
			CreatedAt:   time.Now().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.LogEvent(event))
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents(50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 15)
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(5, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 5)

		events2, _, err := repo.GetEvents(5, 5)
		require.NoError(t, err)
		assert.Len(t, events2, 5)
		assert.NotEqual(t, events[0].ID, events2[0].ID)
	})

	t.Run("order by created_at desc", func(t *testing.T) {
		events, _, err := repo.GetEvents(10, 0)
		require.NoError(t, err)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i-1].CreatedAt.Before(events[i].CreatedAt))
		}
	})
}

func TestRepository_GetEventsByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventAdd,
		Action:    "book_add",
		Status:    entities.AuditStatusSuccess,
	}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "book_delete",
		Status:    entities.AuditStatusSuccess,
	}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "author_cascade_delete",
		Status:    entities.AuditStatusSuccess,
	}))

	events, total, err := repo.GetEventsByType(entities.AuditEventDelete, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, entities.AuditEventDelete, e.EventType)
	}
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	now := time.Now()

	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventAdd,
		Action:    "old_add",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "new_delete",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: now.Add(-1 * time.Hour),
	}))

	deleted, err := repo.DeleteOldEvents(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := repo.GetEvents(50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "new_delete", events[0].Action)
}

func TestRepository_GetEventByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	event := &entities.AuditEvent{
		EventType: entities.AuditEventAdd,
		Action:    "author_add",
		Status:    entities.AuditStatusSuccess,
	}
	require.NoError(t, repo.LogEvent(event))

	t.Run("existing event", func(t *testing.T) {
		found, err := repo.GetEventByID(event.ID)
		require.NoError(t, err)
		assert.Equal(t, event.ID, found.ID)
		assert.Equal(t, "author_add", found.Action)
	})

	t.Run("non-existing event", func(t *testing.T) {
		_, err := repo.GetEventByID(999)
		assert.Error(t, err)
	})
}

func TestRepository_GetEventsBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	now := time.Now()

	for i, age := range []time.Duration{72 * time.Hour, 48 * time.Hour, time.Hour} {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventAdd,
			Action:    "book_add",
			EntityID:  ptrUint(uint(i + 1)),
			Status:    entities.AuditStatusSuccess,
			CreatedAt: now.Add(-age),
		}))
	}

	events, err := repo.GetEventsBefore(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint(1), *events[0].EntityID)
	assert.Equal(t, uint(2), *events[1].EntityID)
}

func ptrUint(v uint) *uint { return &v }
