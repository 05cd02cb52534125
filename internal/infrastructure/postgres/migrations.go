package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                TEXT PRIMARY KEY,
		login             TEXT NOT NULL,
		name              TEXT NOT NULL DEFAULT '',
		avatar_url        TEXT NOT NULL DEFAULT '',
		email             TEXT,
		reminders_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS standups (
		id             UUID PRIMARY KEY,
		user_id        TEXT NOT NULL,
		date           TEXT NOT NULL,
		work_completed TEXT NOT NULL,
		work_planned   TEXT NOT NULL,
		blockers       TEXT NOT NULL,
		task_ids       JSONB NOT NULL DEFAULT '[]',
		commits        JSONB NOT NULL DEFAULT '[]',
		repo_full_name TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_standups_user_created ON standups (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS milestones (
		id          UUID PRIMARY KEY,
		user_id     TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		target_date TEXT,
		status      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_user ON milestones (user_id)`,
	`CREATE TABLE IF NOT EXISTS sprints (
		id            UUID PRIMARY KEY,
		user_id       TEXT NOT NULL,
		milestone_id  UUID REFERENCES milestones (id) ON DELETE SET NULL,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		status        TEXT NOT NULL,
		target_points INTEGER,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_user ON sprints (user_id)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id                 UUID PRIMARY KEY,
		user_id            TEXT NOT NULL,
		sprint_id          UUID REFERENCES sprints (id) ON DELETE SET NULL,
		title              TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL,
		story_points       INTEGER,
		story_point_system TEXT,
		external_id        TEXT,
		external_source    TEXT,
		external_url       TEXT,
		target_date        TEXT,
		completed_at       TIMESTAMPTZ,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks (user_id)`,
}

// Migrate applies the schema. Statements are idempotent so running it on
// every startup is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
	}
	return nil
}
