package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/workshop-users/internal/database"
)

// RunMigrations applies all pending migrations for driver. The migration set is
// picked from the driver (migrations/postgresql or migrations/mysql) and a database
// already at the latest version is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	migrationsPath := "file://migrations/postgresql"
	if driver == database.DriverMySQL {
		migrationsPath = "file://migrations/mysql"
	}

	m, err := migrate.New(migrationsPath, migrationsURL(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationsURL adapts a database/sql DSN to the URL form golang-migrate expects.
// go-sql-driver DSNs carry no scheme, so mysql gets one prepended.
func migrationsURL(driver, connectionString string) string {
	switch driver {
	case database.DriverMySQL:
		return "mysql://" + connectionString
	case database.DriverPostgres:
		return connectionString
	default:
		return driver + "://" + connectionString
	}
}
