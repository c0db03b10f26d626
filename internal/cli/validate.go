package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guilty-go/guilty/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <specs-dir>",
		Short: "Validate declarations without generating code",
		Long: `Validate CUE trait and impl declarations without generating code.

Performs syntax checking, identifier validation, and trait coverage checks
without writing output files. Faster than generate for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadSpecs(specsDir, LoadModeFailFast)

	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCommandError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCommandError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, specsDir)

	// Compile errors surface as validation failures too.
	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	verrs := compiler.Validate(loadResult.Traits, loadResult.Impls)
	result := &ValidationResult{
		Valid:  len(verrs) == 0,
		Errors: verrs,
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
		if !result.Valid {
			return NewExitError(ExitCommandError, fmt.Sprintf("validation failed with %d error(s)", len(verrs)))
		}
		return nil
	}

	if result.Valid {
		fmt.Fprintf(formatter.Writer, "✓ Valid: %d trait(s), %d impl(s)\n",
			len(loadResult.Traits), len(loadResult.Impls))
		return nil
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, ve := range verrs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", ve.Code, ve.Field, ve.Message)
	}
	fmt.Fprintln(formatter.Writer)

	return NewExitError(ExitCommandError, fmt.Sprintf("validation failed with %d error(s)", len(verrs)))
}
