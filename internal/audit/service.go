package audit

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/bookalchemy/internal/database/audit"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// Service records catalog changes and background task runs into the audit trail.
// A nil *Service is valid and records nothing.
type Service struct {
	repo     *audit.Repository
	archiver *Archiver
	pending  sync.WaitGroup
}

// NewService creates a new audit service. archiver may be nil, in which case
// pruned events are discarded without being archived.
func NewService(repo *audit.Repository, archiver *Archiver) *Service {
	return &Service{repo: repo, archiver: archiver}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	if s == nil {
		return nil
	}
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event queued by LogAsync has been written.
func (s *Service) Wait() {
	if s == nil {
		return
	}
	s.pending.Wait()
}

// RecordAdd records the creation of an author or book.
func (s *Service) RecordAdd(entityType entities.EntryType, id uint, name string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventAdd,
		Action:      string(entityType) + "_add",
		Description: truncate(fmt.Sprintf("Added %s: %s", entityType, name), 500),
		EntityType:  entityType,
		EntityID:    &id,
		Status:      entities.AuditStatusSuccess,
	})
}

// RecordDelete records the removal of an author or book. cascade marks an
// author removed because its last book was deleted.
func (s *Service) RecordDelete(entityType entities.EntryType, id uint, name string, cascade bool) {
	action := string(entityType) + "_delete"
	description := fmt.Sprintf("Deleted %s: %s", entityType, name)
	if cascade {
		action = string(entityType) + "_cascade_delete"
		description = fmt.Sprintf("Removed orphaned %s: %s", entityType, name)
	}

	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      action,
		Description: truncate(description, 500),
		EntityType:  entityType,
		EntityID:    &id,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogTask records the outcome of a background task run.
func (s *Service) LogTask(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventTask,
		Action:      action,
		Description: truncate(description, 500),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	if s == nil {
		return []entities.AuditEvent{}, 0, nil
	}
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	if s == nil {
		return []entities.AuditEvent{}, 0, nil
	}
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the retention window, archiving
// them first when an archiver is configured. Nothing is deleted if archiving fails.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	if s == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-retention)

	if s.archiver != nil {
		expired, err := s.repo.GetEventsBefore(cutoff)
		if err != nil {
			return 0, fmt.Errorf("load expired events: %w", err)
		}
		if len(expired) > 0 {
			filename, err := s.archiver.SaveJSON(expired)
			if err != nil {
				return 0, fmt.Errorf("archive expired events: %w", err)
			}
			log.Printf("Archived %d audit events to %s", len(expired), filename)
		}
	}

	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
