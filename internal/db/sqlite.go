package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type sqliteAdapter struct {
	sqliteDialect
}

// OpenSQLite opens the modernc driver on path. ":memory:" gives a private
// in-memory database held by a single connection.
func OpenSQLite(path string) (DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite only supports one writer at a time
	pool.SetMaxOpenConns(1)
	pool.SetMaxIdleConns(1)
	pool.SetConnMaxLifetime(0)

	if path != ":memory:" {
		if _, err := pool.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	return newStore(pool, sqliteAdapter{}), nil
}

// args stores timestamps as fixed-width UTC text so that text comparison,
// MAX and julianday all agree. Booleans become 0 or 1.
func (sqliteAdapter) args(in []interface{}) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		switch t := v.(type) {
		case time.Time:
			out[i] = t.UTC().Format(TimeLayout)
		case *time.Time:
			if t == nil {
				out[i] = nil
			} else {
				out[i] = t.UTC().Format(TimeLayout)
			}
		case bool:
			if t {
				out[i] = int64(1)
			} else {
				out[i] = int64(0)
			}
		case *bool:
			if t == nil {
				out[i] = nil
			} else if *t {
				out[i] = int64(1)
			} else {
				out[i] = int64(0)
			}
		case *string:
			out[i] = deref(t)
		case *int64:
			out[i] = deref(t)
		case *float64:
			out[i] = deref(t)
		case NullTime:
			if t.Valid {
				out[i] = t.Time.UTC().Format(TimeLayout)
			} else {
				out[i] = nil
			}
		default:
			out[i] = v
		}
	}
	return out
}

func deref[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// run drops RETURNING and takes the id from LastInsertId.
func (sqliteAdapter) run(ctx context.Context, c conn, query string, args []interface{}) (Result, error) {
	wantID := false
	if loc := returningClause.FindStringIndex(query); loc != nil {
		query = query[:loc[0]]
		wantID = true
	}

	res, err := c.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}

	out := Result{RowsAffected: n}
	if wantID && n > 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return Result{}, err
		}
		out.InsertedID = &id
	}
	return out, nil
}
