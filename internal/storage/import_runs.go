package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportRun records one execution of the legacy CSV importer against a
// single source file.
type ImportRun struct {
	ID           uuid.UUID  `json:"id"`
	SourceFile   string     `json:"source_file"`
	RowsInserted int64      `json:"rows_inserted"`
	RowsSkipped  int64      `json:"rows_skipped"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`
	Error        *string    `json:"error,omitempty"`
}

// InsertImportRun records a completed (or failed) import run.
func (db *DB) InsertImportRun(ctx context.Context, r ImportRun) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO import_runs (id, source_file, rows_inserted, rows_skipped, started_at, finished_at, error)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.SourceFile, r.RowsInserted, r.RowsSkipped, r.StartedAt, r.FinishedAt, r.Error)
	if err != nil {
		return fmt.Errorf("inserting import run: %w", err)
	}
	return nil
}

// ListImportRuns returns recent import runs, newest first.
func (db *DB) ListImportRuns(ctx context.Context, limit int) ([]ImportRun, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, source_file, rows_inserted, rows_skipped, started_at, finished_at, error
		 FROM import_runs
		 ORDER BY started_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying import runs: %w", err)
	}
	defer rows.Close()

	var result []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.ID, &r.SourceFile, &r.RowsInserted, &r.RowsSkipped,
			&r.StartedAt, &r.FinishedAt, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning import run: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
