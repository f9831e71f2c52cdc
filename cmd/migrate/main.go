package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/paycal/backend/internal/config"
	"github.com/paycal/backend/internal/db"
)

const usage = "usage: migrate [up|down|version]"

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Connect to database
	d, err := db.Open(context.Background(), db.Config{
		URL:             cfg.Database.URL,
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	m, err := db.NewMigrator(d)
	if err != nil {
		_ = d.Close()
		fmt.Fprintf(os.Stderr, "Failed to prepare migrations: %v\n", err)
		os.Exit(1)
	}
	// Closing the migrator closes the pool too.
	defer m.Close()

	fmt.Printf("Connected to %s database\n", d.Dialect().Name())

	if err := run(m, cmd); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, cmd string) error {
	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		fmt.Println("Rolled back one migration")
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read version: %w", err)
		}
		fmt.Printf("Version %d (dirty: %t)\n", v, dirty)
	default:
		return errors.New(usage)
	}
	return nil
}
