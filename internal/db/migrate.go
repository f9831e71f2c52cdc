package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/paycal/backend/migrations"
)

// NewMigrator builds a migrate instance over the embedded migrations for the
// store's dialect. Closing the returned instance closes the pool as well.
func NewMigrator(d DB) (*migrate.Migrate, error) {
	var (
		driver database.Driver
		err    error
	)
	switch d.Dialect().Name() {
	case "postgres":
		driver, err = postgres.WithInstance(d.SQL(), &postgres.Config{})
	default:
		driver, err = sqlite.WithInstance(d.SQL(), &sqlite.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(migrations.FS, d.Dialect().Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, d.Dialect().Name(), driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration.
func MigrateUp(d DB) error {
	m, err := NewMigrator(d)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
