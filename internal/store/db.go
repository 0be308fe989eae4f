package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Config holds the submission database settings.
type Config struct {
	Path          string
	RetentionDays int
}

// DB wraps the SQLite handle together with the retention policy.
type DB struct {
	db            *sql.DB
	retentionDays int
}

// RawDB exposes the underlying *sql.DB for the writer and the caches.
func (d *DB) RawDB() *sql.DB {
	return d.db
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Open opens (creating if needed) the SQLite database at cfg.Path, switches
// it to WAL mode, and ensures the schema exists.
func Open(cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL gives concurrent readers alongside the single async writer, so a
	// listing request never waits on a submission being persisted.
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	for _, p := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqlDB.Exec(p); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := createTables(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	d := &DB{db: sqlDB, retentionDays: cfg.RetentionDays}
	if d.retentionDays <= 0 {
		d.retentionDays = 365
	}

	// Purge on open; short-lived processes would otherwise never hit a
	// periodic cleanup.
	if err := d.Cleanup(); err != nil {
		fmt.Fprintf(os.Stderr, "store: startup cleanup failed (non-fatal): %v\n", err)
	}

	return d, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			partner_name TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			size TEXT NOT NULL,
			selected_features TEXT NOT NULL,
			compute_units REAL NOT NULL,
			storage_tb REAL NOT NULL,
			additional_costs TEXT NOT NULL,
			total_first_year_cost REAL NOT NULL,
			telemetry TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_size ON submissions(size)`,

		`CREATE TABLE IF NOT EXISTS feature_pricing_cache (
			feature_id TEXT PRIMARY KEY,
			monthly_cost_usd REAL NOT NULL,
			built_at INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Cleanup deletes submissions older than retentionDays. Cached feature
// pricing is governed by its own TTL and is not purged here.
func (d *DB) Cleanup() error {
	cutoff := time.Now().AddDate(0, 0, -d.retentionDays).Format(time.RFC3339)
	if _, err := d.db.Exec("DELETE FROM submissions WHERE created_at < ?", cutoff); err != nil {
		return fmt.Errorf("cleanup submissions: %w", err)
	}
	return nil
}
