package store

import (
	"context"
	"database/sql"
	"strings"
)

// schema contains the DDL for all portal tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	// Sessions table for portal authentication
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'user',
		token      TEXT NOT NULL,
		token_exp  INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_email ON sessions(email)`,

	// Last-known campaign list, keyed by backend id
	`CREATE TABLE IF NOT EXISTS campaigns (
		id                   TEXT PRIMARY KEY,
		title                TEXT NOT NULL,
		brand                TEXT NOT NULL,
		description          TEXT NOT NULL DEFAULT '',
		platforms            TEXT NOT NULL DEFAULT '[]',
		image                TEXT NOT NULL DEFAULT '',
		deadline             TEXT NOT NULL DEFAULT '',
		recruitment_end_date TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL DEFAULT 'Active',
		recruiting           INTEGER NOT NULL DEFAULT 0,
		approved_applicants  INTEGER NOT NULL DEFAULT 0,
		position             INTEGER NOT NULL DEFAULT 0,
		fetched_at           TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_campaigns_status ON campaigns(status)`,
	`CREATE INDEX IF NOT EXISTS idx_campaigns_position ON campaigns(position)`,
}

// alterStatements are column additions that need special handling since
// SQLite doesn't support IF NOT EXISTS for ALTER TABLE ADD COLUMN.
var alterStatements = []struct {
	table    string
	column   string
	alterSQL string
	indexSQL string // Optional index to create after column is added
}{
	{
		table:    "sessions",
		column:   "name",
		alterSQL: "ALTER TABLE sessions ADD COLUMN name TEXT NOT NULL DEFAULT ''",
	},
	{
		table:    "campaigns",
		column:   "position",
		alterSQL: "ALTER TABLE campaigns ADD COLUMN position INTEGER NOT NULL DEFAULT 0",
		indexSQL: "CREATE INDEX IF NOT EXISTS idx_campaigns_position ON campaigns(position)",
	},
}

// migrate executes all schema DDL statements and alter migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	// Execute ALTER TABLE statements idempotently.
	for _, alter := range alterStatements {
		if err := addColumnIfNotExists(ctx, db, alter.table, alter.column, alter.alterSQL); err != nil {
			return err
		}
		if alter.indexSQL != "" {
			if _, err := db.ExecContext(ctx, alter.indexSQL); err != nil {
				return err
			}
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, alterSQL string) error {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue *string
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, column) {
			return nil // Column already exists
		}
	}

	// Column doesn't exist, add it.
	_, err = db.ExecContext(ctx, alterSQL)
	return err
}
