package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookalchemy/internal/audit"
	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/http"
	"github.com/mrlokans/bookalchemy/internal/scheduler"
	"github.com/mrlokans/bookalchemy/internal/tasks"
)

// =============================================================================
// Catalog
// =============================================================================

// CatalogService implementations
var _ http.CatalogService = (*catalog.Service)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

// Recorder implementations
var _ catalog.Recorder = (*audit.Service)(nil)

// AuditReader implementations
var _ http.AuditReader = (*audit.Service)(nil)

// AuditEventCleaner implementations
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

// TaskQueue implementations
var _ http.TaskQueue = (*tasks.Client)(nil)

// AuditCleanupEnqueuer implementations
var _ scheduler.AuditCleanupEnqueuer = (*tasks.Client)(nil)
