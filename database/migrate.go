package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateUp applies every pending migration.
func MigrateUp(dsn, table string, logger *slog.Logger) error {
	err := runMigrations(dsn, table, func(m *migrate.Migrate) error { return m.Up() })
	return logOutcome(logger, "up", err)
}

// MigrateDown reverts every applied migration, dropping all tables.
func MigrateDown(dsn, table string, logger *slog.Logger) error {
	err := runMigrations(dsn, table, func(m *migrate.Migrate) error { return m.Down() })
	return logOutcome(logger, "down", err)
}

func logOutcome(logger *slog.Logger, direction string, err error) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("Database schema is up to date", "direction", direction)
		return nil
	case err != nil:
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully", "direction", direction)
	return nil
}

// MigrationVersion reports the applied schema version.
func MigrationVersion(dsn, table string) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := runMigrations(dsn, table, func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		return err
	})
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// runMigrations uses its own connection, migrate closes it when done.
func runMigrations(dsn, table string, step func(*migrate.Migrate) error) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{MigrationsTable: table})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	return step(m)
}
