package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
)

var returningClause = regexp.MustCompile(`(?is)\s+RETURNING\s+[\w\s,."]+;?\s*$`)

type postgresAdapter struct {
	postgresDialect
}

// OpenPostgres opens a lib/pq pool. It does not ping.
func OpenPostgres(cfg Config) (DB, error) {
	pool, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return newStore(pool, postgresAdapter{}), nil
}

func (postgresAdapter) args(in []interface{}) []interface{} { return in }

// run reads the generated id from the RETURNING row.
func (postgresAdapter) run(ctx context.Context, c conn, query string, args []interface{}) (Result, error) {
	if !returningClause.MatchString(query) {
		res, err := c.ExecContext(ctx, query, args...)
		if err != nil {
			return Result{}, err
		}
		n, _ := res.RowsAffected()
		return Result{RowsAffected: n}, nil
	}

	var id int64
	err := c.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		// ON CONFLICT DO NOTHING
		return Result{}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{InsertedID: &id, RowsAffected: 1}, nil
}
