package harness

import (
	"fmt"
	"io"
	"log/slog"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/guilty-go/guilty/internal/codegen"
	"github.com/guilty-go/guilty/internal/compiler"
	"github.com/guilty-go/guilty/internal/ir"
)

// Harness runs generation scenarios end to end: load CUE declarations,
// compile to IR, validate, and expand to Go source. It exercises the same
// pipeline as the CLI without going through cobra.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for diagnostic output during runs.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// New creates a Harness. Diagnostics are discarded unless WithLogger is set.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Result is the outcome of a scenario run.
type Result struct {
	ScenarioName string `json:"scenario_name"`

	// Source is the generated Go file content.
	Source []byte `json:"-"`

	SpecHash   string `json:"spec_hash"`
	TraitCount int    `json:"trait_count"`
	ImplCount  int    `json:"impl_count"`
}

// Run executes a scenario and returns the generated source.
// Compile and validation errors fail the run; they are the scenario's
// responsibility to avoid, not part of what golden files capture.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	traits, impls, err := loadSpecs(scenario.SpecsDir)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	h.logger.Info("compiled declarations",
		"scenario", scenario.Name,
		"traits", len(traits),
		"impls", len(impls))

	if verrs := compiler.Validate(traits, impls); len(verrs) > 0 {
		return nil, fmt.Errorf("scenario %s: validation failed: %v", scenario.Name, verrs[0])
	}

	file, err := codegen.Generate(traits, impls, codegen.Options{
		Package: scenario.Package,
		Imports: scenario.Imports,
		Export:  scenario.Export,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	return &Result{
		ScenarioName: scenario.Name,
		Source:       file.Data,
		SpecHash:     codegen.ExtractSpecHash(file.Data),
		TraitCount:   len(traits),
		ImplCount:    len(impls),
	}, nil
}

// loadSpecs compiles every CUE file in dir into IR, fail-fast.
// The loader is local so this package stays independent of internal/cli and
// its exit-code machinery.
func loadSpecs(dir string) ([]ir.TraitSpec, []ir.ImplSpec, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, nil, fmt.Errorf("no CUE instances in %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, nil, fmt.Errorf("building CUE value: %w", err)
	}

	var traits []ir.TraitSpec
	traitsVal := value.LookupPath(cue.ParsePath("trait"))
	if traitsVal.Exists() {
		iter, err := traitsVal.Fields()
		if err != nil {
			return nil, nil, err
		}
		for iter.Next() {
			spec, err := compiler.CompileTrait(iter.Value())
			if err != nil {
				return nil, nil, err
			}
			traits = append(traits, *spec)
		}
	}

	var impls []ir.ImplSpec
	implsVal := value.LookupPath(cue.ParsePath("impl"))
	if implsVal.Exists() {
		iter, err := implsVal.Fields()
		if err != nil {
			return nil, nil, err
		}
		for iter.Next() {
			spec, err := compiler.CompileImpl(iter.Value())
			if err != nil {
				return nil, nil, err
			}
			impls = append(impls, *spec)
		}
	}

	return traits, impls, nil
}
