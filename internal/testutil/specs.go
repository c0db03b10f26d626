package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteSpecDir writes CUE spec files into a fresh temp directory and returns
// its path. Keys are file names, values are file contents. The directory is
// cleaned up with the test.
func WriteSpecDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
	return dir
}

// ShapesCUE is a well-formed spec used across packages: one trait with a
// defaulted const, two trait-bound impls (one relying on the default), and
// one free-standing impl. Declarations are in alphabetical order so emitted
// output order is independent of how CUE orders struct fields.
const ShapesCUE = `package specs

trait: Shape: {
	doc: "Shape is a closed plane figure."
	const: {
		Label: {type: "string", default: "\"shape\""}
		Sides: {type: "int"}
	}
}

impl: Color: {
	const: {
		Red: {type: "string", value: "\"#ff0000\""}
	}
}

impl: Square: {
	trait: "Shape"
	const: {
		Label: {value: "\"square\""}
		Sides: {value: "4"}
	}
}

impl: Triangle: {
	trait: "Shape"
	const: {
		Sides: {value: "3"}
	}
}
`
