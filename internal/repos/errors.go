package repos

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"storefront/internal/domain"
)

// InsertStatus is the outcome of an insert that may hit a constraint.
// Constraint outcomes are reported here instead of as errors; the error
// return of an insert is reserved for infrastructure failures.
type InsertStatus int

const (
	InsertFailed InsertStatus = iota
	Inserted
	Duplicate        // unique constraint
	MissingReference // foreign key
)

func (s InsertStatus) String() string {
	switch s {
	case Inserted:
		return "inserted"
	case Duplicate:
		return "duplicate"
	case MissingReference:
		return "missing_reference"
	default:
		return "failed"
	}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// insertOutcome maps the error of an insert statement to a status.
func insertOutcome(err error) (InsertStatus, error) {
	if err == nil {
		return Inserted, nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return Duplicate, nil
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return MissingReference, nil
		case sqlite3.SQLITE_CONSTRAINT:
			// primary code only; fall back to the message
			msg := se.Error()
			if strings.Contains(msg, "UNIQUE constraint failed") {
				return Duplicate, nil
			}
			if strings.Contains(msg, "FOREIGN KEY constraint failed") {
				return MissingReference, nil
			}
		}
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch pe.Code {
		case pgUniqueViolation:
			return Duplicate, nil
		case pgForeignKeyViolation:
			return MissingReference, nil
		}
	}
	return InsertFailed, storageErr(err)
}

// storageErr tags errors that mean the database could not be reached.
func storageErr(err error) error {
	if err == nil || !isConnectivity(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
}

func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	// database/sql does not export its closed-pool error
	if strings.Contains(err.Error(), "sql: database is closed") {
		return true
	}
	var ce *pgconn.ConnectError
	if errors.As(err, &ce) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_IOERR:
			return true
		}
	}
	return false
}

func notFound(err error, what string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", what, id, domain.ErrNotFound)
	}
	return storageErr(err)
}
