// Package history keeps a local record of submitted translation jobs so
// job ids survive across CLI invocations.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id        TEXT NOT NULL UNIQUE,
    filename      TEXT NOT NULL,
    language      TEXT NOT NULL,
    direction     TEXT NOT NULL,
    mode          TEXT NOT NULL,
    status        TEXT NOT NULL DEFAULT 'queued',
    submitted_at  TEXT NOT NULL,
    finished_at   TEXT NOT NULL DEFAULT '',
    output_path   TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_jobs_submitted_at ON jobs(submitted_at);
`

// Record is one locally tracked job.
type Record struct {
	ID          int64
	JobID       string
	Filename    string
	Language    string
	Direction   string
	Mode        string
	Status      string
	SubmittedAt time.Time
	FinishedAt  time.Time
	OutputPath  string
}

// Store provides SQLite-backed storage for job history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// WAL keeps concurrent watch/download invocations from blocking
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordSubmitted stores a freshly accepted job. Duplicate job_id inserts
// are silently ignored.
func (s *Store) RecordSubmitted(r Record) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO jobs (
			job_id, filename, language, direction, mode, status, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.JobID, r.Filename, r.Language, r.Direction, r.Mode,
		r.Status, r.SubmittedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert job record: %w", err)
	}
	return nil
}

// RecordOutcome updates the terminal status of a job.
func (s *Store) RecordOutcome(jobID, status string) error {
	_, err := s.db.Exec(`
		UPDATE jobs SET status = ?, finished_at = ? WHERE job_id = ?`,
		status, time.Now().UTC().Format(time.RFC3339), jobID,
	)
	if err != nil {
		return fmt.Errorf("update job outcome: %w", err)
	}
	return nil
}

// RecordDownloaded remembers where an artifact was saved.
func (s *Store) RecordDownloaded(jobID, path string) error {
	_, err := s.db.Exec(`UPDATE jobs SET output_path = ? WHERE job_id = ?`, path, jobID)
	if err != nil {
		return fmt.Errorf("update output path: %w", err)
	}
	return nil
}

// Recent returns up to limit jobs, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, job_id, filename, language, direction, mode,
		       status, submitted_at, finished_at, output_path
		FROM jobs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var submittedAt, finishedAt string
		if err := rows.Scan(
			&r.ID, &r.JobID, &r.Filename, &r.Language, &r.Direction, &r.Mode,
			&r.Status, &submittedAt, &finishedAt, &r.OutputPath,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, submittedAt); err == nil {
			r.SubmittedAt = t
		}
		if finishedAt != "" {
			if t, err := time.Parse(time.RFC3339, finishedAt); err == nil {
				r.FinishedAt = t
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
