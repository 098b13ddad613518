// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Catalog
//
//   - CatalogService: list, add and delete books and authors (internal/http/stores.go),
//     implemented by catalog.Service
//   - Recorder: receives add/delete notifications from the catalog
//     (internal/catalog/service.go), implemented by audit.Service
//
// ## Audit Trail
//
//   - AuditReader: paginated audit event listing (internal/http/stores.go)
//   - AuditEventCleaner: retention cleanup run by the task queue
//     (internal/tasks/cleanup_audit.go)
//
// ## Background Work
//
//   - TaskQueue: enqueue tasks and query their status (internal/http/stores.go)
//   - AuditCleanupEnqueuer: used by the cron scheduler
//     (internal/scheduler/audit_cleanup.go)
//
// All of the above are implemented by tasks.Client or audit.Service.
//
// # Adding a New Background Task
//
//  1. Define the task and its queue in internal/tasks/:
//
//     type ReindexTask struct{}
//
//     func (t ReindexTask) Config() backlite.QueueConfig {
//         return backlite.QueueConfig{Name: "reindex", MaxAttempts: 3}
//     }
//
//     func NewReindexQueue(db *gorm.DB) backlite.Queue {
//         return backlite.NewQueue(func(ctx context.Context, t ReindexTask) error { ... })
//     }
//
//  2. Register it in entrypoint.go next to NewCleanupAuditEventsQueue.
//
//  3. Expose it in internal/http/tasks.go if it can be started on demand.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
