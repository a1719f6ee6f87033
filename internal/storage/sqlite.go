// Package storage keeps a local SQLite history of sync and validation runs
// so drift over time is inspectable without re-reading old plans.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// Run is one recorded invocation of status or validate.
type Run struct {
	ID          int64
	StartedAt   time.Time
	Command     string
	FilesTotal  int
	FilesFailed int
}

// RunFile is one file's outcome within a run.
type RunFile struct {
	Path   string
	Status string
	Detail string
}

// NewSQLiteStore creates or opens the history database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			command TEXT NOT NULL,
			files_total INTEGER NOT NULL,
			files_failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			path TEXT NOT NULL,
			status TEXT NOT NULL,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id)`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun stores one invocation and its per-file outcomes in a single
// transaction. FilesFailed counts files whose status marks them failed.
func (s *SQLiteStore) RecordRun(ctx context.Context, command string, files []RunFile, failed int) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, command, files_total, files_failed) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), command, len(files), failed)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_files (run_id, path, status, detail) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, f := range files {
		if _, err := stmt.ExecContext(ctx, runID, f.Path, f.Status, f.Detail); err != nil {
			return 0, fmt.Errorf("failed to insert run file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// RecentRuns returns the latest n runs, newest first.
func (s *SQLiteStore) RecentRuns(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, command, files_total, files_failed
		 FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Command, &r.FilesTotal, &r.FilesFailed); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFiles returns the per-file outcomes of one run.
func (s *SQLiteStore) RunFiles(ctx context.Context, runID int64) ([]RunFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, status, detail FROM run_files WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []RunFile
	for rows.Next() {
		var f RunFile
		var detail sql.NullString
		if err := rows.Scan(&f.Path, &f.Status, &detail); err != nil {
			return nil, err
		}
		f.Detail = detail.String
		files = append(files, f)
	}
	return files, rows.Err()
}
