package genlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilty-go/guilty/internal/ir"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "genlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestNewRun(t *testing.T) {
	run := NewRun("abc123", "/tmp/out/guilty_gen.go")

	parsed, err := uuid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	assert.Equal(t, "abc123", run.SpecHash)
	assert.Equal(t, ir.ToolVersion, run.ToolVersion)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genlog.db")

	l1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l1.Close())

	l2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l2.Close())
}

func TestRecordAndLatest(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	first := NewRun("hash-1", "/out/a.go")
	first.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, l.Record(ctx, first))

	second := NewRun("hash-2", "/out/a.go")
	second.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, l.Record(ctx, second))

	latest, err := l.Latest(ctx, "/out/a.go")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "hash-2", latest.SpecHash)
	assert.Equal(t, second.ID, latest.ID)
	assert.True(t, latest.CreatedAt.Equal(second.CreatedAt))
}

func TestLatestUnknownPath(t *testing.T) {
	l := openTestLog(t)

	latest, err := l.Latest(context.Background(), "/never/generated.go")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRecordIdempotent(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	run := NewRun("hash-1", "/out/a.go")
	require.NoError(t, l.Record(ctx, run))
	require.NoError(t, l.Record(ctx, run))

	runs, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecentOrderAndLimit(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := NewRun("hash", "/out/a.go")
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, l.Record(ctx, run))
	}

	runs, err := l.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.True(t, runs[0].CreatedAt.After(runs[1].CreatedAt))
	assert.True(t, runs[1].CreatedAt.After(runs[2].CreatedAt))
}

func TestRecentEmptyLog(t *testing.T) {
	l := openTestLog(t)

	runs, err := l.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}
