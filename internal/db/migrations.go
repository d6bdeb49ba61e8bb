package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Migrations are additive only. The schema version already applied is
// recorded in schema_migrations, and pending migrations run each in its own
// transaction. There is no destructive drop-and-recreate fallback here.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "base schema",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);`,
			`CREATE TABLE IF NOT EXISTS exercise (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				muscle_group TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				user_id INTEGER REFERENCES users (id),
				active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);`,
			`CREATE TABLE IF NOT EXISTS workout_log (
				id SERIAL PRIMARY KEY,
				user_id INTEGER NOT NULL REFERENCES users (id),
				exercise_id INTEGER NOT NULL REFERENCES exercise (id),
				date DATE NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				notes TEXT NOT NULL DEFAULT ''
			);`,
			`CREATE TABLE IF NOT EXISTS workout_set (
				id SERIAL PRIMARY KEY,
				workout_log_id INTEGER NOT NULL REFERENCES workout_log (id) ON DELETE CASCADE,
				set_number INTEGER NOT NULL,
				kilos DOUBLE PRECISION NOT NULL,
				reps INTEGER NOT NULL,
				completed BOOLEAN NOT NULL DEFAULT TRUE
			);`,
			`CREATE TABLE IF NOT EXISTS weight_log (
				id SERIAL PRIMARY KEY,
				user_id INTEGER NOT NULL REFERENCES users (id),
				kilos DOUBLE PRECISION NOT NULL,
				date DATE NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				notes TEXT NOT NULL DEFAULT '',
				UNIQUE (user_id, date)
			);`,
			`CREATE INDEX IF NOT EXISTS workout_log_user_exercise_date_idx
				ON workout_log (user_id, exercise_id, date);`,
			`CREATE INDEX IF NOT EXISTS workout_set_log_idx
				ON workout_set (workout_log_id);`,
		},
	},
	{
		version: 2,
		name:    "seed system exercise catalog",
		stmts:   []string{seedSystemExercisesStmt},
	},
}

// ApplyMigrations brings the schema up to the latest version.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var currentVersion int
	if err := pool.
		QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).
		Scan(&currentVersion); err != nil {
		return fmt.Errorf("get current schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if err := applyMigration(ctx, pool, m); err != nil {
			return fmt.Errorf("apply migration %d [%s]: %w", m.version, m.name, err)
		}
		log.Infof("applied migration %d: %s", m.version, m.name)
	}

	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, m migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, stmt := range m.stmts {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2);`,
		m.version, m.name,
	); err != nil {
		return fmt.Errorf("record migration version: %w", err)
	}

	return tx.Commit(ctx)
}
