package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

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
	if err := migrateBackfillLineSeq(db); err != nil {
		return fmt.Errorf("backfilling estimate line seq: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_company ON projects(company_id)`,

	`CREATE TABLE IF NOT EXISTS estimates (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		label       TEXT NOT NULL DEFAULT '',
		imported_at TEXT,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_estimates_project ON estimates(project_id)`,

	`CREATE TABLE IF NOT EXISTS estimate_lines (
		id          TEXT PRIMARY KEY,
		estimate_id TEXT NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		category    TEXT NOT NULL DEFAULT '',
		selector    TEXT NOT NULL DEFAULT '',
		activity    TEXT NOT NULL DEFAULT '',
		quantity    TEXT NOT NULL DEFAULT '0',
		room        TEXT NOT NULL DEFAULT '',
		note        TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_estimate_lines_estimate ON estimate_lines(estimate_id)`,

	`CREATE TABLE IF NOT EXISTS price_lists (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		revision   INTEGER NOT NULL DEFAULT 1,
		is_active  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_price_lists_kind ON price_lists(kind, is_active, revision)`,

	`CREATE TABLE IF NOT EXISTS price_list_entries (
		id             TEXT PRIMARY KEY,
		price_list_id  TEXT NOT NULL REFERENCES price_lists(id) ON DELETE CASCADE,
		category       TEXT NOT NULL,
		selector       TEXT NOT NULL,
		activity       TEXT NOT NULL DEFAULT '',
		unit           TEXT NOT NULL DEFAULT '',
		labor_minimum  TEXT NOT NULL DEFAULT '',
		wage           TEXT NOT NULL DEFAULT '0',
		labor_burden   TEXT NOT NULL DEFAULT '0',
		labor_overhead TEXT NOT NULL DEFAULT '0'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_price_list_entries_lookup ON price_list_entries(price_list_id, category, selector)`,

	`CREATE TABLE IF NOT EXISTS trade_capacity (
		id             TEXT PRIMARY KEY,
		company_id     TEXT NOT NULL,
		project_id     TEXT REFERENCES projects(id) ON DELETE CASCADE,
		trade          TEXT NOT NULL,
		max_concurrent INTEGER NOT NULL CHECK(max_concurrent > 0),
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_trade_capacity_scope
		ON trade_capacity(company_id, IFNULL(project_id, ''), trade)`,

	`CREATE TABLE IF NOT EXISTS schedule_tasks (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		estimate_id       TEXT NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		synthetic_id      TEXT NOT NULL,
		kind              TEXT NOT NULL CHECK(kind IN ('MITIGATION','WORK')),
		room              TEXT,
		trade             TEXT NOT NULL DEFAULT '',
		phase_code        INTEGER NOT NULL,
		phase_label       TEXT NOT NULL DEFAULT '',
		start_date        TEXT NOT NULL,
		end_date          TEXT NOT NULL,
		duration_days     REAL NOT NULL,
		total_labor_hours REAL,
		crew_size         INTEGER,
		predecessor_ids   TEXT NOT NULL DEFAULT '[]',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_schedule_tasks_synthetic
		ON schedule_tasks(project_id, estimate_id, synthetic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_tasks_dates ON schedule_tasks(project_id, start_date, end_date)`,

	// Append-only: nothing updates or deletes rows in this table.
	`CREATE TABLE IF NOT EXISTS schedule_change_logs (
		id                     TEXT PRIMARY KEY,
		project_id             TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		estimate_id            TEXT NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		schedule_task_id       TEXT NOT NULL REFERENCES schedule_tasks(id) ON DELETE CASCADE,
		task_synthetic_id      TEXT NOT NULL,
		change_type            TEXT NOT NULL CHECK(change_type IN ('TASK_CREATED','TASK_UPDATED')),
		previous_start_date    TEXT,
		previous_end_date      TEXT,
		previous_duration_days REAL,
		new_start_date         TEXT NOT NULL,
		new_end_date           TEXT NOT NULL,
		new_duration_days      REAL NOT NULL,
		actor_id               TEXT NOT NULL,
		created_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_logs_scope
		ON schedule_change_logs(project_id, estimate_id, created_at)`,

	// Line ordering and source dates arrived after the first import format.
	`ALTER TABLE estimate_lines ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE estimate_lines ADD COLUMN source_date TEXT`,
}

// migrateBackfillLineSeq numbers estimate lines imported before the seq
// column existed, in rowid order per estimate. Idempotent: only lines with
// seq = 0 are touched, and they are numbered after any existing seq.
func migrateBackfillLineSeq(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM estimate_lines WHERE seq = 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking estimate_lines seq: %w", err)
	}
	if count == 0 {
		return nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, estimate_id FROM estimate_lines WHERE seq = 0 ORDER BY estimate_id, rowid`)
	if err != nil {
		return fmt.Errorf("listing unnumbered lines: %w", err)
	}
	type pending struct{ id, estimateID string }
	var lines []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.estimateID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning line: %w", err)
		}
		lines = append(lines, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating lines: %w", err)
	}

	next := make(map[string]int)
	for _, l := range lines {
		seq, ok := next[l.estimateID]
		if !ok {
			if err := db.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(seq), 0) FROM estimate_lines WHERE estimate_id = ?`, l.estimateID,
			).Scan(&seq); err != nil {
				return fmt.Errorf("reading max seq for estimate %s: %w", l.estimateID, err)
			}
		}
		seq++
		next[l.estimateID] = seq
		if _, err := db.ExecContext(ctx,
			`UPDATE estimate_lines SET seq = ? WHERE id = ? AND seq = 0`, seq, l.id); err != nil {
			return fmt.Errorf("updating line seq: %w", err)
		}
	}
	return nil
}
