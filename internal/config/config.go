package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Session
		Audit
		AuditCleanup
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
		CSRFEnabled   bool
		CSRFSecret    string // Hex-encoded or raw; generated per process if empty
	}
	Audit struct {
		Enabled       bool
		RetentionDays int    // Days to keep audit events (default: 30)
		ArchiveDir    string // Pruned events are archived here when set
	}
	AuditCleanup struct {
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// NewConfig reads configuration from the environment, after loading
// DefaultEnvFile if it exists.
func NewConfig() *Config {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load %s: %v", DefaultEnvFile, err)
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Session and CSRF defaults
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "")

	// Audit defaults
	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_archive_dir", "")
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
			CSRFEnabled:   v.GetBool("CSRF_ENABLED"),
			CSRFSecret:    v.GetString("CSRF_SECRET"),
		},
		Audit: Audit{
			Enabled:       v.GetBool("AUDIT_ENABLED"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
			ArchiveDir:    v.GetString("AUDIT_ARCHIVE_DIR"),
		},
		AuditCleanup: AuditCleanup{
			Schedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
