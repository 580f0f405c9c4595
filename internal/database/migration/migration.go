package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"corpusapi/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// The DDL is portable between PostgreSQL and SQLite. The UNIQUE constraint on
// fingerprint is what serializes concurrent uploads of the same content.
var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  fingerprint TEXT    NOT NULL UNIQUE,
  length      INTEGER NOT NULL CHECK (length >= 0),
  content     TEXT    NOT NULL
);`,
	},
}

var sentinelQueries = map[string]string{
	"postgres": "SELECT to_regclass('public.documents') IS NOT NULL",
	"sqlite":   "SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'documents'",
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
// dialect is the database driver name ("postgres" or "sqlite").
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect, dbHost string) error {
	start := time.Now()
	log := logging.Component("database").With().Str("db_host", dbHost).Str("dialect", dialect).Logger()

	query, ok := sentinelQueries[dialect]
	if !ok {
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().Err(err).
			Str("event", "db_migration_failed").
			Str("status", "error").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
