package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session data keys
const (
	keyFlashSuccess = "flash_success"
	keyFlashError   = "flash_error"
)

// Config controls session cookies.
type Config struct {
	Lifetime      time.Duration
	SecureCookies bool
}

// Manager wraps scs.SessionManager with flash message helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a session manager persisting to the sessions table of sqlDB,
// creating the table if needed.
func NewManager(sqlDB *sql.DB, cfg Config) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.Lifetime

	sm.Cookie.Name = "bookalchemy_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// FlashSuccess queues a confirmation shown on the next rendered page.
func (m *Manager) FlashSuccess(ctx context.Context, msg string) {
	m.Put(ctx, keyFlashSuccess, msg)
}

// FlashError queues an error shown on the next rendered page.
func (m *Manager) FlashError(ctx context.Context, msg string) {
	m.Put(ctx, keyFlashError, msg)
}

// Flashes returns and clears the pending flash messages.
func (m *Manager) Flashes(ctx context.Context) (success, failure string) {
	return m.PopString(ctx, keyFlashSuccess), m.PopString(ctx, keyFlashError)
}
