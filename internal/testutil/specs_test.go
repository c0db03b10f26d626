package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSpecDir(t *testing.T) {
	dir := WriteSpecDir(t, map[string]string{
		"shapes.cue":       ShapesCUE,
		"nested/extra.cue": "package specs\n",
	})

	data, err := os.ReadFile(filepath.Join(dir, "shapes.cue"))
	require.NoError(t, err)
	assert.Equal(t, ShapesCUE, string(data))

	_, err = os.Stat(filepath.Join(dir, "nested", "extra.cue"))
	assert.NoError(t, err)
}
