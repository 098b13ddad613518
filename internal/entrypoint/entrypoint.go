package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/audit"
	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/config"
	"github.com/mrlokans/bookalchemy/internal/database"
	auditrepo "github.com/mrlokans/bookalchemy/internal/database/audit"
	http_controllers "github.com/mrlokans/bookalchemy/internal/http"
	"github.com/mrlokans/bookalchemy/internal/scheduler"
	"github.com/mrlokans/bookalchemy/internal/session"
	"github.com/mrlokans/bookalchemy/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work only once no request can enqueue more of it.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Alchemy v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	var auditService *audit.Service
	if cfg.Audit.Enabled {
		var archiver *audit.Archiver
		if cfg.Audit.ArchiveDir != "" {
			archiver = audit.NewArchiver(cfg.Audit.ArchiveDir)
			log.Printf("Expired audit events will be archived to %s", cfg.Audit.ArchiveDir)
		}
		auditService = audit.NewService(auditrepo.NewRepository(db.DB), archiver)
	}

	catalogService := catalog.NewService(db.DB, auditService)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(scheduler.AuditCleanupConfig{
			Enabled:       cfg.Audit.Enabled,
			Schedule:      cfg.AuditCleanup.Schedule,
			RetentionDays: cfg.Audit.RetentionDays,
		}, taskClient)
		if err := cleanupScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: audit cleanup scheduler not started: %v", err)
		}
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessions, err := session.NewManager(sqlDB, session.Config{
		Lifetime:      cfg.Session.Lifetime,
		SecureCookies: cfg.Session.SecureCookies,
	})
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	var csrfSecret []byte
	if cfg.Session.CSRFEnabled {
		csrfSecret, err = resolveCSRFSecret(cfg.Session.CSRFSecret)
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
	} else {
		log.Printf("WARNING: CSRF protection is disabled")
	}

	routerCfg := http_controllers.RouterConfig{
		Catalog:            catalogService,
		Database:           db,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		Sessions:           sessions,
		CSRFSecret:         csrfSecret,
		SecureCookies:      cfg.Session.SecureCookies,
		TemplatesPath:      cfg.UI.TemplatesPath,
		StaticPath:         cfg.UI.StaticPath,
		Version:            version,
	}
	// Assigned only when set so the interfaces stay nil instead of holding nil pointers.
	if auditService != nil {
		routerCfg.Audit = auditService
	}
	if taskClient != nil {
		routerCfg.Tasks = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		auditService.Wait()
	}

	Serve(router, cfg, onShutdown)
}

// resolveCSRFSecret decodes a hex secret, falls back to the raw bytes, and
// generates a per-process secret when none is configured.
func resolveCSRFSecret(configured string) ([]byte, error) {
	if configured == "" {
		secret, err := session.GenerateCSRFSecret()
		if err != nil {
			return nil, err
		}
		log.Printf("Generated CSRF secret (set CSRF_SECRET to keep forms valid across restarts)")
		return secret, nil
	}
	if secret, err := hex.DecodeString(configured); err == nil {
		return secret, nil
	}
	return []byte(configured), nil
}
