package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Migration is one forward-only schema change.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists schema changes in the order they are applied.
var Migrations = []Migration{
	{
		Name: "0001_create_users",
		SQL: `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
	profile_photo TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT users_email_key UNIQUE (email)
);`,
	},
	{
		Name: "0002_create_templates",
		SQL: `
CREATE TABLE IF NOT EXISTS templates (
	id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name                TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	thumbnail           TEXT NOT NULL DEFAULT '',
	category            TEXT NOT NULL DEFAULT 'modern'
	                    CHECK (category IN ('modern', 'classic', 'creative', 'minimal', 'ats', 'custom')),
	is_active           BOOLEAN NOT NULL DEFAULT TRUE,
	is_ats              BOOLEAN NOT NULL DEFAULT FALSE,
	is_custom           BOOLEAN NOT NULL DEFAULT FALSE,
	custom_template_url TEXT NOT NULL DEFAULT '',
	layout              TEXT NOT NULL DEFAULT 'modern'
	                    CHECK (layout IN ('modern', 'minimal', 'creative', 'classic', 'custom')),
	styles              JSONB NOT NULL DEFAULT '{}'::jsonb,
	usage_count         INTEGER NOT NULL DEFAULT 0,
	created_by          UUID REFERENCES users(id) ON DELETE SET NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT templates_name_key UNIQUE (name)
);
CREATE INDEX IF NOT EXISTS idx_templates_active ON templates (is_active);`,
	},
	{
		Name: "0003_create_resumes",
		SQL: `
CREATE TABLE IF NOT EXISTS resumes (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id        UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	template_id    UUID REFERENCES templates(id) ON DELETE SET NULL,
	personal_info  JSONB NOT NULL,
	education      JSONB NOT NULL DEFAULT '[]'::jsonb,
	experience     JSONB NOT NULL DEFAULT '[]'::jsonb,
	skills         JSONB NOT NULL DEFAULT '[]'::jsonb,
	projects       JSONB NOT NULL DEFAULT '[]'::jsonb,
	certifications JSONB NOT NULL DEFAULT '[]'::jsonb,
	completeness   INTEGER NOT NULL DEFAULT 0 CHECK (completeness BETWEEN 0 AND 100),
	is_public      BOOLEAN NOT NULL DEFAULT FALSE,
	shareable_link TEXT NOT NULL,
	qr_code        TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT resumes_shareable_link_key UNIQUE (shareable_link)
);
CREATE INDEX IF NOT EXISTS idx_resumes_user_created ON resumes (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_resumes_created ON resumes (created_at DESC);`,
	},
}

// Migrate applies every migration not yet recorded in schema_migrations.
// Each migration runs in its own transaction.
func (db *DB) Migrate(ctx context.Context, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	_, err := db.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name       TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range Migrations {
		applied, err := db.migrationApplied(ctx, m.Name)
		if err != nil {
			return err
		}
		if applied {
			logger.Debug("migration already applied", zap.String("migration", m.Name))
			continue
		}

		logger.Info("applying migration", zap.String("migration", m.Name))
		err = pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func (db *DB) migrationApplied(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", name, err)
	}
	return exists, nil
}
