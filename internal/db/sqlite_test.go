package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryDB(t *testing.T) DB {
	t.Helper()

	d, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	require.NoError(t, MigrateUp(d))
	return d
}

func insertUser(t *testing.T, d DB, email string) int64 {
	t.Helper()

	res, err := d.Run(context.Background(),
		`INSERT INTO users (email, password, name, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		email, "hash", "Test", time.Now())
	require.NoError(t, err)
	require.NotNil(t, res.InsertedID)
	return *res.InsertedID
}

func TestRunReturnsInsertedID(t *testing.T) {
	d := newMemoryDB(t)

	first := insertUser(t, d, "a@example.com")
	second := insertUser(t, d, "b@example.com")

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestRunWithoutReturning(t *testing.T) {
	d := newMemoryDB(t)
	ctx := context.Background()
	id := insertUser(t, d, "a@example.com")

	res, err := d.Run(ctx, `UPDATE users SET name = ? WHERE id = ?`, "Renamed", id)
	require.NoError(t, err)
	assert.Nil(t, res.InsertedID)
	assert.Equal(t, int64(1), res.RowsAffected)

	res, err = d.Run(ctx, `UPDATE users SET name = ? WHERE id = ?`, "Nobody", id+100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.RowsAffected)
}

func TestUniqueViolation(t *testing.T) {
	d := newMemoryDB(t)
	insertUser(t, d, "dup@example.com")

	_, err := d.Run(context.Background(),
		`INSERT INTO users (email, password, name) VALUES (?, ?, ?) RETURNING id`,
		"dup@example.com", "hash", "Again")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUniqueViolation))
	assert.True(t, IsUniqueViolation(err))

	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "run", qe.Op)
}

func TestOtherErrorsAreNotUnique(t *testing.T) {
	d := newMemoryDB(t)

	_, err := d.Run(context.Background(), `INSERT INTO no_such_table (x) VALUES (?)`, 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUniqueViolation))

	var qe *QueryError
	assert.True(t, errors.As(err, &qe))
}

func TestGetNoRows(t *testing.T) {
	d := newMemoryDB(t)

	var email string
	err := d.Get(context.Background(), `SELECT email FROM users WHERE id = ?`,
		func(s Scanner) error { return s.Scan(&email) }, 99)

	assert.ErrorIs(t, err, ErrNoRows)
}

func TestAllKeepsQueryOrder(t *testing.T) {
	d := newMemoryDB(t)
	insertUser(t, d, "b@example.com")
	insertUser(t, d, "a@example.com")
	insertUser(t, d, "c@example.com")

	var emails []string
	err := d.All(context.Background(), `SELECT email FROM users ORDER BY email DESC`,
		func(s Scanner) error {
			var e string
			if err := s.Scan(&e); err != nil {
				return err
			}
			emails = append(emails, e)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"c@example.com", "b@example.com", "a@example.com"}, emails)
}

func TestAllEmpty(t *testing.T) {
	d := newMemoryDB(t)

	calls := 0
	err := d.All(context.Background(), `SELECT id FROM users`, func(s Scanner) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestWithTxRollsBack(t *testing.T) {
	d := newMemoryDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := d.WithTx(ctx, func(q Querier) error {
		if _, err := q.Run(ctx, `INSERT INTO users (email, password, name) VALUES (?, ?, ?) RETURNING id`, "tx@example.com", "h", "Tx"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, d.Get(ctx, `SELECT COUNT(*) FROM users`, func(s Scanner) error { return s.Scan(&n) }))
	assert.Equal(t, 0, n)
}

func TestWithTxCommits(t *testing.T) {
	d := newMemoryDB(t)
	ctx := context.Background()

	var id int64
	err := d.WithTx(ctx, func(q Querier) error {
		res, err := q.Run(ctx, `INSERT INTO users (email, password, name) VALUES (?, ?, ?) RETURNING id`, "tx@example.com", "h", "Tx")
		if err != nil {
			return err
		}
		id = *res.InsertedID
		return nil
	})
	require.NoError(t, err)

	var email string
	require.NoError(t, d.Get(ctx, `SELECT email FROM users WHERE id = ?`, func(s Scanner) error { return s.Scan(&email) }, id))
	assert.Equal(t, "tx@example.com", email)
}

func TestTimestampsRoundTrip(t *testing.T) {
	d := newMemoryDB(t)
	ctx := context.Background()
	id := insertUser(t, d, "t@example.com")

	at := time.Date(2024, 3, 9, 14, 30, 15, 250_000_000, time.FixedZone("TRT", 3*3600))
	_, err := d.Run(ctx, `UPDATE users SET premium_expires_at = ? WHERE id = ?`, at, id)
	require.NoError(t, err)

	var got NullTime
	require.NoError(t, d.Get(ctx, `SELECT premium_expires_at FROM users WHERE id = ?`, func(s Scanner) error { return s.Scan(&got) }, id))
	require.True(t, got.Valid)
	assert.True(t, got.Time.Equal(at), "got %v want %v", got.Time, at)
}

// The 30-day boundary must classify the same way with an explicit reference
// and with the store clock.
func TestOlderThanDaysBoundary(t *testing.T) {
	d := newMemoryDB(t)
	ctx := context.Background()
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want bool
	}{
		{"29 days", 29 * 24 * time.Hour, false},
		{"exactly 30 days", 30 * 24 * time.Hour, false},
		{"30 days and a minute", 30*24*time.Hour + time.Minute, true},
		{"31 days", 31 * 24 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var older bool
			err := d.Get(ctx, `SELECT `+d.Dialect().OlderThanDays("?", 30, true),
				func(s Scanner) error { return s.Scan(&older) },
				ref, ref.Add(-tt.ago))
			require.NoError(t, err)
			assert.Equal(t, tt.want, older)
		})
	}

	now := time.Now().UTC()
	for _, tt := range []struct {
		days int
		want bool
	}{{29, false}, {31, true}} {
		var older bool
		err := d.Get(ctx, `SELECT `+d.Dialect().OlderThanDays("?", 30, false),
			func(s Scanner) error { return s.Scan(&older) },
			now.AddDate(0, 0, -tt.days))
		require.NoError(t, err)
		assert.Equal(t, tt.want, older, "store clock, %d days", tt.days)
	}
}

func TestGreatestKeepsLaterTimestamp(t *testing.T) {
	d := newMemoryDB(t)
	ctx := context.Background()
	id := insertUser(t, d, "g@example.com")

	t1 := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	t0 := t1.Add(-48 * time.Hour)
	update := `UPDATE users SET premium_expires_at = ` +
		d.Dialect().Greatest("COALESCE(premium_expires_at, ?)", "?") + ` WHERE id = ?`

	for _, at := range []time.Time{t1, t0} {
		_, err := d.Run(ctx, update, at, at, id)
		require.NoError(t, err)
	}

	var got NullTime
	require.NoError(t, d.Get(ctx, `SELECT premium_expires_at FROM users WHERE id = ?`, func(s Scanner) error { return s.Scan(&got) }, id))
	assert.True(t, got.Time.Equal(t1))
}

func TestTransactorJoinsOuterTx(t *testing.T) {
	d := newMemoryDB(t)
	tr := NewTransactor(d)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tr.InTx(ctx, func(ctx context.Context) error {
		_, err := Conn(ctx, d).Run(ctx, `INSERT INTO users (email, password, name) VALUES (?, ?, ?)`, "outer@example.com", "h", "O")
		require.NoError(t, err)

		return tr.InTx(ctx, func(ctx context.Context) error {
			_, err := Conn(ctx, d).Run(ctx, `INSERT INTO users (email, password, name) VALUES (?, ?, ?)`, "inner@example.com", "h", "I")
			require.NoError(t, err)
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, d.Get(ctx, `SELECT COUNT(*) FROM users`, func(s Scanner) error { return s.Scan(&n) }))
	assert.Equal(t, 0, n)
}

// modernc sqlite understands RETURNING and ON CONFLICT, so the postgres id
// path can run against the in-memory pool.
func TestPostgresRunReadsReturningRow(t *testing.T) {
	d := newMemoryDB(t)
	ctx := context.Background()
	pool := d.SQL()

	tests := []struct {
		name         string
		query        string
		args         []interface{}
		wantID       bool
		wantAffected int64
	}{
		{
			name:         "insert returning id",
			query:        `INSERT INTO users (email, password, name) VALUES (?, ?, ?) RETURNING id`,
			args:         []interface{}{"pg@example.com", "h", "Pg"},
			wantID:       true,
			wantAffected: 1,
		},
		{
			name:  "conflict does nothing",
			query: `INSERT INTO users (email, password, name) VALUES (?, ?, ?) ON CONFLICT (email) DO NOTHING RETURNING id`,
			args:  []interface{}{"pg@example.com", "h", "Again"},
		},
		{
			name:         "statement without returning",
			query:        `UPDATE users SET name = ? WHERE email = ?`,
			args:         []interface{}{"Renamed", "pg@example.com"},
			wantAffected: 1,
		},
		{
			name:  "update matching nothing",
			query: `UPDATE users SET name = ? WHERE email = ?`,
			args:  []interface{}{"Nobody", "missing@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := postgresAdapter{}.run(ctx, pool, tt.query, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAffected, res.RowsAffected)
			if !tt.wantID {
				assert.Nil(t, res.InsertedID)
				return
			}
			require.NotNil(t, res.InsertedID)

			var email string
			require.NoError(t, d.Get(ctx, `SELECT email FROM users WHERE id = ?`,
				func(s Scanner) error { return s.Scan(&email) }, *res.InsertedID))
			assert.Equal(t, "pg@example.com", email)
		})
	}
}

// Both adapters report the same id and row count for the same statements.
func TestAdaptersAgreeOnInsertedID(t *testing.T) {
	ctx := context.Background()
	insert := `INSERT INTO users (email, password, name) VALUES (?, ?, ?) RETURNING id`

	for _, a := range []adapter{sqliteAdapter{}, postgresAdapter{}} {
		d := newMemoryDB(t)
		pool := d.SQL()

		first, err := a.run(ctx, pool, insert, []interface{}{"a@example.com", "h", "A"})
		require.NoError(t, err)
		second, err := a.run(ctx, pool, insert, []interface{}{"b@example.com", "h", "B"})
		require.NoError(t, err)

		require.NotNil(t, first.InsertedID)
		require.NotNil(t, second.InsertedID)
		assert.Equal(t, int64(1), *first.InsertedID)
		assert.Equal(t, int64(2), *second.InsertedID)
		assert.Equal(t, int64(1), second.RowsAffected)
	}
}
