package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_results (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		personality_type     CHAR(4) NOT NULL,
		scores               JSONB NOT NULL,
		description          TEXT NOT NULL,
		notes                TEXT NOT NULL DEFAULT '',
		change_from_previous JSONB NOT NULL DEFAULT '{}'::jsonb,
		seq                  BIGSERIAL,
		created_at           TIMESTAMPTZ NOT NULL,
		updated_at           TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS test_results_owner_recent_idx
		ON test_results (user_id, created_at DESC, seq DESC)`,
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
