package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a spec directory plus
// generation settings, with the expected output held in a golden file.
type Scenario struct {
	// Name uniquely identifies this scenario; it names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// SpecsDir is the directory of CUE declarations to compile,
	// relative to the scenario file location.
	SpecsDir string `yaml:"specs_dir"`

	// Package is the package clause of the generated file.
	Package string `yaml:"package"`

	// Export title-cases lowercase const names.
	Export bool `yaml:"export,omitempty"`

	// Imports lists import paths copied into the generated file.
	Imports []string `yaml:"imports,omitempty"`
}

// LoadScenario reads a scenario from a YAML file.
// SpecsDir is resolved relative to the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if scenario.SpecsDir == "" {
		return nil, fmt.Errorf("scenario %s: specs_dir is required", path)
	}
	if scenario.Package == "" {
		return nil, fmt.Errorf("scenario %s: package is required", path)
	}

	if !filepath.IsAbs(scenario.SpecsDir) {
		scenario.SpecsDir = filepath.Join(filepath.Dir(path), scenario.SpecsDir)
	}

	return &scenario, nil
}
