package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conductor-agent/conductor/pkg/models"
)

// SaveRun persists a finished run and its per-agent results atomically.
func (db *DB) SaveRun(rec *models.RunRecord) error {
	return db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (id, goal, status, error, started_at, finished_at, input_tokens, output_tokens)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.Goal, string(rec.Status), rec.Error,
			formatTime(rec.StartedAt), formatTime(rec.FinishedAt),
			rec.InputTokens, rec.OutputTokens)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for name, output := range rec.Results {
			if _, err := tx.Exec(`
				INSERT INTO run_results (run_id, agent_name, output)
				VALUES (?, ?, ?)
			`, rec.ID, name, output); err != nil {
				return fmt.Errorf("insert result for %s: %w", name, err)
			}
		}

		return nil
	})
}

// ListRuns returns run records without their results, newest first, up to
// limit entries. A non-positive limit returns everything.
func (db *DB) ListRuns(limit int) ([]*models.RunRecord, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	query := `
		SELECT id, goal, status, error, started_at, finished_at, input_tokens, output_tokens
		FROM runs ORDER BY started_at DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}

	return runs, rows.Err()
}

// GetRun returns a single run with its results, or nil if not found.
func (db *DB) GetRun(id string) (*models.RunRecord, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row := db.conn.QueryRow(`
		SELECT id, goal, status, error, started_at, finished_at, input_tokens, output_tokens
		FROM runs WHERE id = ?
	`, id)

	rec, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`
		SELECT agent_name, output FROM run_results WHERE run_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get run results: %w", err)
	}
	defer rows.Close()

	rec.Results = make(models.ResultMap)
	for rows.Next() {
		var name, output string
		if err := rows.Scan(&name, &output); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.Results[name] = output
	}

	return rec, rows.Err()
}

// PurgeRuns deletes runs older than the specified duration.
// Returns the number of runs deleted.
func (db *DB) PurgeRuns(olderThan time.Duration) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cutoff := formatTime(time.Now().Add(-olderThan))

	result, err := db.conn.Exec(`DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge runs: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.RunRecord, error) {
	var rec models.RunRecord
	var status, startedAt, finishedAt string
	var errMsg sql.NullString

	if err := s.Scan(&rec.ID, &rec.Goal, &status, &errMsg,
		&startedAt, &finishedAt, &rec.InputTokens, &rec.OutputTokens); err != nil {
		return nil, err
	}

	rec.Status = models.RunStatus(status)
	if errMsg.Valid {
		rec.Error = errMsg.String
	}

	var err error
	if rec.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if rec.FinishedAt, err = parseTime(finishedAt); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}

	return &rec, nil
}
