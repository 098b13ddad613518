package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/entities"
)

// CatalogService is the catalog business layer the handlers drive.
type CatalogService interface {
	ListCatalog(ctx context.Context, sortBy catalog.SortKey, searchTerm string) (catalog.Listing, error)
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	AddAuthor(ctx context.Context, in catalog.NewAuthor) (*entities.Author, error)
	AddBook(ctx context.Context, in catalog.NewBook) (*entities.Book, error)
	DeleteBook(ctx context.Context, id uint) (catalog.BookRemoval, error)
	DeleteAuthor(ctx context.Context, id uint) (catalog.AuthorRemoval, error)
}

// AuditReader lists recorded audit events.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	EnqueueAuditCleanup(retentionDays int) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
