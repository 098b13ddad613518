package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/session"
)

// NewRouter creates and configures the HTTP router with all endpoints.
//
// HTML routes get security headers, CSRF protection and sessions; the JSON API
// under /api and the health probes are stateless.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// CSRF must run before the session so the session context is added on top
	// of the request that gorilla/csrf hands back.
	pages := router.Group("/", session.SecurityHeadersMiddleware())
	if len(cfg.CSRFSecret) > 0 {
		pages.Use(session.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		pages.Use(cfg.Sessions.LoadAndSave())
	}

	ui := NewUIController(cfg.Catalog, cfg.Sessions)
	pages.GET("/", ui.HomePage)
	pages.GET("/add_author", ui.AddAuthorForm)
	pages.POST("/add_author", ui.AddAuthor)
	pages.GET("/add_book", ui.AddBookForm)
	pages.POST("/add_book", ui.AddBook)
	pages.POST("/book/:id/delete", ui.DeleteBook)
	pages.POST("/author/:id/delete", ui.DeleteAuthor)

	api := router.Group("/api")

	catalogAPI := NewCatalogAPIController(cfg.Catalog)
	api.GET("/catalog", catalogAPI.GetCatalog)
	api.GET("/authors", catalogAPI.ListAuthors)
	api.POST("/authors", catalogAPI.CreateAuthor)
	api.GET("/authors/:id", catalogAPI.GetAuthor)
	api.DELETE("/authors/:id", catalogAPI.DeleteAuthor)
	api.POST("/books", catalogAPI.CreateBook)
	api.GET("/books/:id", catalogAPI.GetBook)
	api.DELETE("/books/:id", catalogAPI.DeleteBook)

	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	if cfg.Tasks != nil {
		tasksController := NewTasksController(cfg.Tasks, cfg.AuditRetentionDays)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
