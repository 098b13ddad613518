package database

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
)

// DriverName is the database/sql driver registered for the catalog store.
// It is the stock sqlite3 driver plus the casefold() SQL function.
const DriverName = "sqlite3_bookalchemy"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", Casefold, true)
		},
	})
}

// Casefold applies Unicode full case folding, so "STRASSE" and "straße" compare equal.
func Casefold(s string) string {
	return cases.Fold().String(s)
}

// IsForeignKeyViolation reports whether err was raised by a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
