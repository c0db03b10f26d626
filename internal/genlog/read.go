package genlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Latest returns the most recent run for an output path, or nil if the path
// has never been generated.
func (l *Log) Latest(ctx context.Context, outputPath string) (*Run, error) {
	row := l.db.QueryRowContext(ctx, `
		SELECT id, spec_hash, output_path, tool_version, created_at
		FROM runs
		WHERE output_path = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, outputPath)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return &run, nil
}

// Recent returns up to limit runs, newest first.
// Returns an empty slice (not nil) when the log is empty.
func (l *Log) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, spec_hash, output_path, tool_version, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var createdAt string
	if err := s.Scan(&run.ID, &run.SpecHash, &run.OutputPath, &run.ToolVersion, &createdAt); err != nil {
		return Run{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts

	return run, nil
}
