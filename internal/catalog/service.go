// Package catalog implements the library's business rules on top of the
// persistence provider: the searchable catalog listing, author and book
// creation, and the deletion policy that removes orphaned authors.
//
// Every operation runs in its own transaction acquired from the provider;
// the transaction is committed or rolled back, and its connection released,
// on every return path.
package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/bookalchemy/internal/database/repository"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// Recorder receives a notification after each committed change.
type Recorder interface {
	RecordAdd(entityType entities.EntryType, id uint, name string)
	RecordDelete(entityType entities.EntryType, id uint, name string, cascade bool)
}

// Service is safe for concurrent use; it holds no per-request state.
type Service struct {
	db       *gorm.DB
	recorder Recorder
}

// NewService creates a catalog service over db. recorder may be nil.
func NewService(db *gorm.DB, recorder Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

// store groups the repositories bound to one transaction.
type store struct {
	books   *repository.Repository[entities.Book]
	authors *repository.Repository[entities.Author]
}

func (s *Service) inTx(ctx context.Context, fn func(st store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(store{
			books:   repository.New[entities.Book](tx),
			authors: repository.New[entities.Author](tx),
		})
	})
}

func (s *Service) recordAdd(entityType entities.EntryType, id uint, name string) {
	if s.recorder != nil {
		s.recorder.RecordAdd(entityType, id, name)
	}
}

func (s *Service) recordDelete(entityType entities.EntryType, id uint, name string, cascade bool) {
	if s.recorder != nil {
		s.recorder.RecordDelete(entityType, id, name, cascade)
	}
}
