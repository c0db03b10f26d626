package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/guilty-go/guilty/internal/codegen"
	"github.com/guilty-go/guilty/internal/compiler"
	"github.com/guilty-go/guilty/internal/genlog"
	"github.com/guilty-go/guilty/internal/ir"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	OutputDir string // output directory (defaults to specs dir)
	Package   string // overrides config package name
	Check     bool   // verify output is current instead of writing
	LogDB     string // optional generation log database path
}

// GenerateResult is the success payload of the generate command.
type GenerateResult struct {
	Output   string `json:"output"`
	SpecHash string `json:"spec_hash"`
	Traits   int    `json:"traits"`
	Impls    int    `json:"impls"`
	Skipped  bool   `json:"skipped"` // output was already current
	RunID    string `json:"run_id,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <specs-dir>",
		Short: "Generate Go accessor methods from declarations",
		Long: `Generate Go source from CUE trait and impl declarations.

Each declared const expands to a zero-argument method on its receiver type;
each trait expands to an interface over those methods. Output lands next to
the specs (or under --output) and is skipped when already current, detected
via the spec hash embedded in the generated header.

With --log-db, runs are recorded in a generation log and the latest run for
an output is consulted first, so unchanged specs skip emission entirely.

With --check, no file is written: the command exits 1 if the existing
output is missing or stale, for use in CI.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "output directory (defaults to specs dir)")
	cmd.Flags().StringVar(&opts.Package, "package", "", "package name for generated code (overrides config)")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "verify generated output is current; write nothing")
	cmd.Flags().StringVar(&opts.LogDB, "log-db", "", "record the run in this generation log database")

	return cmd
}

func runGenerate(opts *GenerateOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadSpecs(specsDir, LoadModeCollectAll)

	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCommandError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCommandError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, specsDir)

	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	if verrs := compiler.Validate(loadResult.Traits, loadResult.Impls); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		return outputCompileErrors(formatter, errs)
	}

	cfg, err := LoadConfig(specsDir)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error(), nil)
	}
	if opts.Package != "" {
		cfg.Package = opts.Package
	}
	if verrs := compiler.ValidatePackageName(cfg.Package); len(verrs) > 0 {
		return outputCommandError(formatter, ErrCodeInvalidPackage, verrs[0].Message, nil)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = specsDir
	}
	outPath := filepath.Join(outDir, cfg.Output)

	hash, err := ir.OutputHash(loadResult.Traits, loadResult.Impls, ir.GenSettings{
		Package: cfg.Package,
		Export:  cfg.Export,
		Imports: cfg.Imports,
	})
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("hashing spec: %v", err), nil)
	}

	var log *genlog.Log
	if opts.LogDB != "" {
		log, err = genlog.Open(opts.LogDB)
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("opening generation log: %v", err), nil)
		}
		defer log.Close()
	}

	// Log fast path: when the latest recorded run for this output already
	// carries the current hash and the file header agrees, the output is
	// current and emission is skipped entirely.
	if log != nil && !opts.Check {
		latest, err := log.Latest(cmd.Context(), absPath(outPath))
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("reading generation log: %v", err), nil)
		}
		if latest != nil && latest.SpecHash == hash {
			existing, readErr := os.ReadFile(outPath)
			if readErr == nil && codegen.ExtractSpecHash(existing) == hash {
				formatter.VerboseLog("Log run %s already covers %s, skipping generation", latest.ID, outPath)
				return outputGenerateSuccess(formatter, &GenerateResult{
					Output:   outPath,
					SpecHash: hash,
					Traits:   len(loadResult.Traits),
					Impls:    len(loadResult.Impls),
					Skipped:  true,
					RunID:    latest.ID,
				}, false)
			}
		}
	}

	file, err := codegen.Generate(loadResult.Traits, loadResult.Impls, codegen.Options{
		Package: cfg.Package,
		Imports: cfg.Imports,
		Export:  cfg.Export,
	})
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	existing, readErr := os.ReadFile(outPath)
	current := readErr == nil && bytes.Equal(existing, file.Data)

	result := &GenerateResult{
		Output:   outPath,
		SpecHash: hash,
		Traits:   len(loadResult.Traits),
		Impls:    len(loadResult.Impls),
		Skipped:  current,
	}

	if opts.Check {
		if current {
			return outputGenerateSuccess(formatter, result, true)
		}
		if readErr == nil && codegen.ExtractSpecHash(existing) == result.SpecHash {
			// Same spec hash but different bytes: hand-edited output.
			_ = formatter.Error(ErrCodeStale, fmt.Sprintf("%s was modified after generation", outPath), nil)
		} else {
			_ = formatter.Error(ErrCodeStale, fmt.Sprintf("%s is out of date", outPath), nil)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s is out of date", ErrCodeStale, outPath))
	}

	if !current {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("creating output dir: %v", err), nil)
		}
		if err := os.WriteFile(outPath, file.Data, 0644); err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
		formatter.VerboseLog("Wrote %d byte(s) to %s", len(file.Data), outPath)
	} else {
		formatter.VerboseLog("%s already current, not rewritten", outPath)
	}

	if log != nil {
		run := genlog.NewRun(result.SpecHash, absPath(outPath))
		if err := log.Record(cmd.Context(), run); err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("recording run: %v", err), nil)
		}
		result.RunID = run.ID
		formatter.VerboseLog("Recorded run %s in %s", run.ID, opts.LogDB)
	}

	return outputGenerateSuccess(formatter, result, false)
}

// absPath makes paths comparable across working directories; log entries
// always store the absolute form.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func outputGenerateSuccess(formatter *OutputFormatter, result *GenerateResult, check bool) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	switch {
	case check:
		fmt.Fprintf(formatter.Writer, "✓ %s is up to date\n", result.Output)
	case result.Skipped:
		fmt.Fprintf(formatter.Writer, "✓ %s already up to date (%d trait(s), %d impl(s))\n",
			result.Output, result.Traits, result.Impls)
	default:
		fmt.Fprintf(formatter.Writer, "✓ Generated %s (%d trait(s), %d impl(s))\n",
			result.Output, result.Traits, result.Impls)
	}

	return nil
}
