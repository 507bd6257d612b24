package database

import (
	"database/sql"
	"fmt"
)

// initRunsTable initializes the runs table, one row per batch.
func initRunsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        csv_path TEXT NOT NULL,
        started_at TIMESTAMP NOT NULL,
        finished_at TIMESTAMP,
        succeeded INTEGER DEFAULT 0,
        failed INTEGER DEFAULT 0,
        skipped INTEGER DEFAULT 0,
        malformed INTEGER DEFAULT 0,
        aborted INTEGER DEFAULT 0
    );
    CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// initDownloadsTable initializes the downloads table, one row per job outcome.
func initDownloadsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS downloads (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
        line INTEGER NOT NULL,
        name TEXT NOT NULL,
        url TEXT NOT NULL,
        url_key TEXT NOT NULL,
        status TEXT NOT NULL CHECK(status IN ('success', 'failed', 'skipped')),
        kind TEXT,
        reason TEXT,
        path TEXT,
        degraded INTEGER DEFAULT 0,
        attempts INTEGER DEFAULT 0,
        started_at TIMESTAMP,
        finished_at TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_downloads_url_key ON downloads(url_key);
    CREATE INDEX IF NOT EXISTS idx_downloads_status ON downloads(status);
    CREATE INDEX IF NOT EXISTS idx_downloads_finished_at ON downloads(finished_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create downloads table: %w", err)
	}
	return nil
}
