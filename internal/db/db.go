// Package db is the storage facade shared by every repository. Callers write
// queries with ? placeholders and never learn which store is active.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paycal/backend/internal/pkg/metrics"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanFunc reads one record from the current row.
type ScanFunc func(s Scanner) error

// Result is what Run reports for a statement.
type Result struct {
	// InsertedID is set for inserts that asked for RETURNING id and
	// inserted a row.
	InsertedID   *int64
	RowsAffected int64
}

// Querier runs statements against the store or inside a transaction.
type Querier interface {
	// Get scans the first row. It returns ErrNoRows when nothing matched.
	Get(ctx context.Context, query string, scan ScanFunc, args ...interface{}) error

	// All scans every row in the order the query produces them.
	All(ctx context.Context, query string, scan ScanFunc, args ...interface{}) error

	// Run executes a statement.
	Run(ctx context.Context, query string, args ...interface{}) (Result, error)

	Dialect() Dialect
}

// DB is a Querier that owns a connection pool.
type DB interface {
	Querier

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(q Querier) error) error

	Ping(ctx context.Context) error
	Close() error

	// SQL exposes the pool for migrations.
	SQL() *sql.DB
}

// Config selects and tunes the backing store.
type Config struct {
	URL             string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to PostgreSQL when URL is set and to the SQLite file at Path
// otherwise.
func Open(ctx context.Context, cfg Config) (DB, error) {
	var (
		d   DB
		err error
	)
	if cfg.URL != "" {
		d, err = OpenPostgres(cfg)
	} else {
		d, err = OpenSQLite(cfg.Path)
	}
	if err != nil {
		return nil, err
	}

	if err := d.Ping(ctx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d.Dialect().Name(), err)
	}
	return d, nil
}

// conn is the part of *sql.DB and *sql.Tx the facade needs.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// adapter holds what differs between stores when running a statement.
type adapter interface {
	Dialect
	args(in []interface{}) []interface{}
	run(ctx context.Context, c conn, query string, args []interface{}) (Result, error)
}

// querier implements Querier over a pool or a transaction.
type querier struct {
	c conn
	a adapter
}

func (q *querier) Dialect() Dialect { return q.a }

func (q *querier) Get(ctx context.Context, query string, scan ScanFunc, args ...interface{}) error {
	defer observe("get", q.a, time.Now())

	query = q.a.Rebind(query)
	row := q.c.QueryRowContext(ctx, query, q.a.args(args)...)
	if err := row.Err(); err != nil {
		return classify("get", query, err)
	}
	return classify("get", query, scan(row))
}

func (q *querier) All(ctx context.Context, query string, scan ScanFunc, args ...interface{}) error {
	defer observe("all", q.a, time.Now())

	query = q.a.Rebind(query)
	rows, err := q.c.QueryContext(ctx, query, q.a.args(args)...)
	if err != nil {
		return classify("all", query, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return classify("all", query, err)
		}
	}
	return classify("all", query, rows.Err())
}

func (q *querier) Run(ctx context.Context, query string, args ...interface{}) (Result, error) {
	defer observe("run", q.a, time.Now())

	query = q.a.Rebind(query)
	res, err := q.a.run(ctx, q.c, query, q.a.args(args))
	if err != nil {
		return Result{}, classify("run", query, err)
	}
	return res, nil
}

// store implements DB.
type store struct {
	querier
	pool *sql.DB
}

func newStore(pool *sql.DB, a adapter) *store {
	return &store{querier: querier{c: pool, a: a}, pool: pool}
}

func (s *store) WithTx(ctx context.Context, fn func(q Querier) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return classify("begin", "", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&querier{c: tx, a: s.a}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return classify("commit", "", err)
	}
	return nil
}

func (s *store) Ping(ctx context.Context) error { return s.pool.PingContext(ctx) }

func (s *store) Close() error { return s.pool.Close() }

func (s *store) SQL() *sql.DB { return s.pool }

func observe(op string, d Dialect, start time.Time) {
	metrics.ObserveQuery(op, d.Name(), time.Since(start))
}
