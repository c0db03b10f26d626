package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/guilty-go/guilty/internal/codegen"
)

// ConfigFileName is the optional per-directory generator config.
const ConfigFileName = ".guilty.yaml"

// Config holds generation settings read from .guilty.yaml in the specs
// directory. Flags override file values; both are optional.
type Config struct {
	// Package is the package clause of the generated file.
	// Defaults to the specs directory base name.
	Package string `yaml:"package"`

	// Output is the generated file name inside the output directory.
	Output string `yaml:"output"`

	// Export title-cases lowercase const names in the emitted accessors.
	Export bool `yaml:"export"`

	// Imports lists import paths copied into the generated file.
	Imports []string `yaml:"imports"`
}

// LoadConfig reads .guilty.yaml from dir, applying defaults for unset
// fields. A missing config file is not an error; a malformed one is.
func LoadConfig(dir string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	cfg.applyDefaults(dir)
	return cfg, nil
}

func (c *Config) applyDefaults(dir string) {
	if c.Package == "" {
		abs, err := filepath.Abs(dir)
		if err == nil {
			c.Package = filepath.Base(abs)
		}
	}
	if c.Output == "" {
		c.Output = codegen.DefaultFileName
	}
}
