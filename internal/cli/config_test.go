package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilty-go/guilty/internal/codegen"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	// Package defaults to the directory base name, output to the
	// conventional file name.
	assert.Equal(t, filepath.Base(dir), cfg.Package)
	assert.Equal(t, codegen.DefaultFileName, cfg.Output)
	assert.False(t, cfg.Export)
	assert.Empty(t, cfg.Imports)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `package: shapes
output: shapes_gen.go
export: true
imports:
  - time
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "shapes", cfg.Package)
	assert.Equal(t, "shapes_gen.go", cfg.Output)
	assert.True(t, cfg.Export)
	assert.Equal(t, []string{"time"}, cfg.Imports)
}

func TestLoadConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("package: custom\n"), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.Package)
	assert.Equal(t, codegen.DefaultFileName, cfg.Output)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("package: [unclosed\n"), 0644))

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFileName)
}
