package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNoRows is returned by Get when the query matched nothing.
	ErrNoRows = errors.New("db: no rows in result set")

	// ErrUniqueViolation matches any unique or primary key violation.
	ErrUniqueViolation = errors.New("db: unique constraint violation")
)

// QueryError wraps a failed statement. It never carries parameter values.
type QueryError struct {
	Op     string
	Query  string
	Err    error
	unique bool
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("db %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is reports unique violations as ErrUniqueViolation.
func (e *QueryError) Is(target error) bool {
	return target == ErrUniqueViolation && e.unique
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrUniqueViolation)
}

func classify(op, query string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &QueryError{Op: op, Query: query, Err: err, unique: isUnique(err)}
}

func isUnique(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}
