package database

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// RunMigrations applies any pending goose migrations from dir and logs the
// resulting schema version. Safe to run on every startup; an up-to-date
// schema is a no-op.
func RunMigrations(db *sql.DB, dir string, logger *zap.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Applying pending migrations", zap.String("dir", dir))

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := MigrationVersion(db)
	if err != nil {
		return err
	}

	logger.Info("Schema is up to date", zap.Int64("version", version))
	return nil
}

// MigrationVersion reports the schema version currently applied to db
func MigrationVersion(db *sql.DB) (int64, error) {
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
