package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are executed in order on every startup. Statements must be
// idempotent (CREATE ... IF NOT EXISTS); ALTER TABLE statements re-run
// harmlessly because duplicate-column errors are tolerated.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id                TEXT PRIMARY KEY,
		business_name     TEXT NOT NULL,
		source            TEXT NOT NULL DEFAULT '',
		website           TEXT NOT NULL DEFAULT '',
		website_quality   INTEGER NOT NULL DEFAULT 0,
		social_profiles   TEXT NOT NULL DEFAULT '[]',
		technologies      TEXT NOT NULL DEFAULT '[]',
		content_topics    TEXT NOT NULL DEFAULT '[]',
		online_reviews    INTEGER NOT NULL DEFAULT 0,
		growth_indicators TEXT NOT NULL DEFAULT '[]',
		service_needs     TEXT NOT NULL DEFAULT '[]',
		business_maturity REAL,
		digital_presence  REAL,
		status            TEXT NOT NULL
		                  CHECK(status IN ('new','enriched','qualified','transferred')),
		score             INTEGER,
		identified_needs  TEXT NOT NULL DEFAULT '[]',
		discovered_at     TEXT NOT NULL,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,

	`CREATE TABLE IF NOT EXISTS deals (
		id                 TEXT PRIMARY KEY,
		lead_id            TEXT NOT NULL UNIQUE REFERENCES leads(id),
		business_name      TEXT NOT NULL,
		status             TEXT NOT NULL
		                   CHECK(status IN ('received','outreach_sent','engaged',
		                                    'proposal_sent','negotiating','closed_won','closed_lost')),
		proposal           TEXT,
		negotiation_rounds INTEGER NOT NULL DEFAULT 0,
		closed_at          TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deals_status ON deals(status)`,

	`CREATE TABLE IF NOT EXISTS communications (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		deal_id   TEXT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
		direction TEXT NOT NULL CHECK(direction IN ('inbound','outbound')),
		content   TEXT NOT NULL,
		timestamp TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_communications_deal ON communications(deal_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id             TEXT PRIMARY KEY,
		deal_id        TEXT NOT NULL REFERENCES deals(id),
		business_name  TEXT NOT NULL,
		service_type   TEXT NOT NULL,
		status         TEXT NOT NULL
		               CHECK(status IN ('created','pending','in_progress','review','completed')),
		start_date     TEXT NOT NULL,
		end_date       TEXT NOT NULL,
		duration_days  INTEGER NOT NULL,
		progress       REAL NOT NULL DEFAULT 0,
		status_history TEXT NOT NULL DEFAULT '[]',
		completed_at   TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		id           TEXT NOT NULL,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL
		             CHECK(status IN ('pending','in_progress','needs_review',
		                              'revision_needed','completed')),
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		history      TEXT NOT NULL DEFAULT '[]',
		completed_at TEXT,
		reviewed_at  TEXT,
		feedback     TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (project_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS deliverables (
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		type        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL
		            CHECK(status IN ('planned','pending_review','approved','rejected')),
		due_date    TEXT NOT NULL,
		file_path   TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (project_id, id)
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
