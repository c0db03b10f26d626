package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilty-go/guilty/internal/genlog"
	"github.com/guilty-go/guilty/internal/testutil"
)

func TestLogMissingDatabase(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewLogCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "missing.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, buf.String(), "generation log not found")
}

func TestLogShowsRecordedRuns(t *testing.T) {
	specsDir := testutil.WriteSpecDir(t, map[string]string{
		"shapes.cue": testutil.ShapesCUE,
	})
	dbPath := filepath.Join(t.TempDir(), "guilty.db")

	_, err := runGenerateCmd(t, specsDir, "--package", "shapes", "--log-db", dbPath)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewLogCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	err = cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "1 run(s):")
	assert.Contains(t, output, "guilty_gen.go")
	assert.Contains(t, output, "guilty 0.1.0")
}

func TestLogEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "guilty.db")

	// An opened-but-unwritten log is valid and empty.
	log, err := genlog.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewLogCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	err = cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No runs recorded")
}

func TestLogJSON(t *testing.T) {
	specsDir := testutil.WriteSpecDir(t, map[string]string{
		"shapes.cue": testutil.ShapesCUE,
	})
	dbPath := filepath.Join(t.TempDir(), "guilty.db")

	_, err := runGenerateCmd(t, specsDir, "--package", "shapes", "--log-db", dbPath)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewLogCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	err = cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var runs []genlog.Run
	require.NoError(t, json.Unmarshal(data, &runs))
	require.Len(t, runs, 1)
	assert.Len(t, runs[0].SpecHash, 64)
}

func TestLogLimit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "guilty.db")

	log, err := genlog.Open(dbPath)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		run := genlog.NewRun("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", "/tmp/out.go")
		require.NoError(t, log.Record(context.Background(), run))
	}
	require.NoError(t, log.Close())

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewLogCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "-n", "2"})

	err = cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 run(s):")
}
