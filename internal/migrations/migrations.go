package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrationsTable keeps the version row apart from other schemas sharing the database.
const migrationsTable = "obrc_schema_migrations"

// SchemaVersion is the newest run schema embedded in this build.
const SchemaVersion = 1

//go:embed *.sql
var MigrationFiles embed.FS

// RunMigrations brings the runs and run_summaries tables up to SchemaVersion.
// With autoMigrate off it only reports how far behind the database is; the
// postgres adapter then refuses to start if the run tables are missing.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	src, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded run schema: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read run schema version: %w", err)
	}

	if version > SchemaVersion {
		return fmt.Errorf("run schema version %d is newer than this build supports (%d)", version, SchemaVersion)
	}

	if dirty {
		// Run table DDL is IF [NOT] EXISTS, so rewinding one version and
		// re-applying it finishes whatever the interrupted run left behind.
		target, err := rewindTarget(src, version)
		if err != nil {
			return err
		}
		slog.Warn("[Migrations] Run schema migration was interrupted, rewinding",
			"dirty_version", version,
			"rewind_to", target)
		if err := m.Force(target); err != nil {
			return fmt.Errorf("failed to rewind dirty run schema at version %d: %w", version, err)
		}
		if target == database.NilVersion {
			version = 0
		} else {
			version = uint(target)
		}
	}

	if !autoMigrate {
		if version < SchemaVersion {
			slog.Warn("[Migrations] Run schema is behind and auto-migration is disabled",
				"current_version", version,
				"schema_version", SchemaVersion)
		}
		return nil
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("[Migrations] Run schema is up to date", "version", version)
			return nil
		}
		return fmt.Errorf("failed to migrate run schema: %w", err)
	}

	slog.Info("[Migrations] Run schema migrated",
		"from_version", version,
		"to_version", SchemaVersion)
	return nil
}

// rewindTarget returns the version preceding dirty, or database.NilVersion
// when dirty is the first migration.
func rewindTarget(src source.Driver, dirty uint) (int, error) {
	prev, err := src.Prev(dirty)
	if errors.Is(err, fs.ErrNotExist) {
		return database.NilVersion, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find run schema version before %d: %w", dirty, err)
	}
	return int(prev), nil
}
