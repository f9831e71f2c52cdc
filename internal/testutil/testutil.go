package testutil

import (
	"testing"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/pkg/clock"
)

// NewTestDB opens an in-memory SQLite store migrated with the real migrations
func NewTestDB(t *testing.T) db.DB {
	t.Helper()

	d, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.MigrateUp(d); err != nil {
		_ = d.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { CleanupDB(d) })
	return d
}

// CleanupDB closes the test database
func CleanupDB(d db.DB) {
	if d != nil {
		_ = d.Close()
	}
}

// Epoch is the instant test clocks start at
var Epoch = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// NewClock returns a fixed clock set to Epoch
func NewClock() *clock.Fixed {
	return clock.NewFixed(Epoch)
}
