package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Dates are stored as YYYY-MM-DD text so range filters compare lexically.

const AssetsSchema = `
	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT
	);
`

const MaintenanceSchema = `
	CREATE TABLE IF NOT EXISTS maintenance_tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		scheduled_date TEXT NOT NULL,
		completed_date TEXT NULL,
		cost_cents INTEGER NULL,
		assignee TEXT NOT NULL DEFAULT '',
		asset_id TEXT NULL REFERENCES assets(id)
	);
`

const BookingsSchema = `
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		scheduled_date TEXT NOT NULL,
		completed_date TEXT NULL,
		cost_cents INTEGER NULL,
		owner TEXT NOT NULL DEFAULT '',
		resource TEXT NOT NULL DEFAULT '',
		attendees INTEGER NOT NULL DEFAULT 0
	);
`

const InspectionsSchema = `
	CREATE TABLE IF NOT EXISTS hse_inspections (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		scheduled_date TEXT NOT NULL,
		completed_date TEXT NULL,
		cost_cents INTEGER NULL,
		inspector TEXT NOT NULL DEFAULT '',
		area TEXT NOT NULL DEFAULT '',
		findings INTEGER NOT NULL DEFAULT 0
	);
`

var bootQueries = []string{
	AssetsSchema,
	MaintenanceSchema,
	BookingsSchema,
	InspectionsSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the sqlite database at settings.DbPath and creates missing tables.
// Use ":memory:" for a throwaway database.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if settings.DbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := Boot(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func Boot(ctx context.Context, db *sql.DB) error {
	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("boot schema: %w", err)
		}
	}
	return nil
}
