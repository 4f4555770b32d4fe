package store

import (
	"context"
	"fmt"
	"time"
)

// RecordIngestError persists one game or file failure for later review.
func (s *Store) RecordIngestError(ctx context.Context, runID, sourceFile, gameID, message string) error {
	err := s.execWithRetry(ctx,
		`INSERT INTO ingest_errors (run_id, source_file, game_id, message, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		runID, sourceFile, gameID, message, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record ingest error: %w", err)
	}
	return nil
}

// IngestErrors returns the failures recorded for a run, oldest first.
// An empty runID returns every recorded failure.
func (s *Store) IngestErrors(ctx context.Context, runID string) ([]*IngestErrorRow, error) {
	query := `SELECT id, run_id, source_file, game_id, message, created_at FROM ingest_errors`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingest errors: %w", err)
	}
	defer rows.Close()

	var out []*IngestErrorRow
	for rows.Next() {
		var e IngestErrorRow
		var createdAt string
		if err := rows.Scan(&e.ID, &e.RunID, &e.SourceFile, &e.GameID, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ingest error: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ingest errors: %w", err)
	}
	return out, nil
}
