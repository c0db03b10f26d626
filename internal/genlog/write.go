package genlog

import (
	"context"
	"fmt"
	"time"
)

// Record inserts a generation run.
// Uses ON CONFLICT(id) DO NOTHING for idempotency; replaying the same run id
// is silently ignored.
func (l *Log) Record(ctx context.Context, run Run) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO runs (id, spec_hash, output_path, tool_version, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.SpecHash,
		run.OutputPath,
		run.ToolVersion,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	return nil
}
