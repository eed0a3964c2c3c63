package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full set can be re-run on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS client_projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('low','medium','high','critical')),
		budget      REAL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_client_projects_short_id
		ON client_projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS onboarding_sessions (
		id                    TEXT PRIMARY KEY,
		project_id            TEXT NOT NULL REFERENCES client_projects(id) ON DELETE CASCADE,
		client_name           TEXT NOT NULL DEFAULT '',
		client_email          TEXT NOT NULL,
		access_token          TEXT NOT NULL UNIQUE,
		status                TEXT NOT NULL DEFAULT 'pending'
		                      CHECK(status IN ('pending','in_progress','completed','abandoned')),
		cadence_profile       TEXT NOT NULL DEFAULT 'standard'
		                      CHECK(cadence_profile IN ('standard','aggressive','gentle','custom')),
		completion_percentage INTEGER NOT NULL DEFAULT 0 CHECK(completion_percentage >= 0),
		current_step          INTEGER NOT NULL DEFAULT 0 CHECK(current_step >= 0),
		total_steps           INTEGER NOT NULL DEFAULT 0 CHECK(total_steps >= 0),
		last_activity_at      TEXT,
		expires_at            TEXT,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_onboarding_sessions_project ON onboarding_sessions(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_onboarding_sessions_status ON onboarding_sessions(status)`,

	// The sent-reminder ledger. The unique pair is what makes delivery
	// idempotent under concurrent scheduler ticks.
	`CREATE TABLE IF NOT EXISTS reminder_logs (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES onboarding_sessions(id) ON DELETE CASCADE,
		kind       TEXT NOT NULL
		           CHECK(kind IN ('initial','gentle','encouragement','final','custom')),
		subject    TEXT NOT NULL DEFAULT '',
		sent_at    TEXT NOT NULL,
		UNIQUE(session_id, kind)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reminder_logs_session ON reminder_logs(session_id)`,
}
