package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zombar/readability-analyzer/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// TextHash fingerprints analyzed text so runs can be correlated without storing it
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// SaveRun stores a run record, assigning an id and timestamp when missing
func (db *DB) SaveRun(ctx context.Context, run *models.Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	// UTC also drops the monotonic reading so stored timestamps sort as text
	run.CreatedAt = run.CreatedAt.UTC()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO runs (id, tool, text_hash, word_count, score, status, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, run.ID, run.Tool, run.TextHash, run.WordCount, run.Score, run.Status, run.DurationMs, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by id
func (db *DB) GetRun(ctx context.Context, id string) (*models.Run, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, tool, text_hash, word_count, score, status, duration_ms, created_at
		FROM runs WHERE id = $1
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first. An empty tool lists every tool.
func (db *DB) ListRuns(ctx context.Context, tool string, limit, offset int) ([]*models.Run, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, tool, text_hash, word_count, score, status, duration_ms, created_at
		FROM runs
		WHERE ($1 = '' OR tool = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, tool, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ToolStats summarizes the runs of one tool
type ToolStats struct {
	Tool          string  `json:"tool"`
	Runs          int     `json:"runs"`
	Failed        int     `json:"failed"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// Stats aggregates runs per tool
func (db *DB) Stats(ctx context.Context) ([]ToolStats, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT tool,
			COUNT(*),
			SUM(CASE WHEN status = 'ok' THEN 0 ELSE 1 END),
			AVG(duration_ms)
		FROM runs
		GROUP BY tool
		ORDER BY tool
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate runs: %w", err)
	}
	defer rows.Close()

	stats := []ToolStats{}
	for rows.Next() {
		var s ToolStats
		if err := rows.Scan(&s.Tool, &s.Runs, &s.Failed, &s.AvgDurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// PruneRuns deletes runs created before the cutoff and returns how many went
func (db *DB) PruneRuns(ctx context.Context, before time.Time) (int64, error) {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM runs WHERE created_at < $1", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*models.Run, error) {
	var (
		run   models.Run
		score sql.NullFloat64
	)
	if err := s.Scan(&run.ID, &run.Tool, &run.TextHash, &run.WordCount, &score, &run.Status, &run.DurationMs, &run.CreatedAt); err != nil {
		return nil, err
	}
	if score.Valid {
		v := score.Float64
		run.Score = &v
	}
	return &run, nil
}
