package http

import (
	"github.com/mrlokans/bookalchemy/internal/database"
	"github.com/mrlokans/bookalchemy/internal/session"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Catalog  CatalogService
	Database *database.Database
	Audit    AuditReader

	// Task queue (optional)
	Tasks              TaskQueue
	AuditRetentionDays int

	// Browser state for the HTML pages. Sessions may be nil, which disables
	// flash messages; an empty CSRFSecret disables CSRF protection.
	Sessions      *session.Manager
	CSRFSecret    []byte
	SecureCookies bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	Version string
}
