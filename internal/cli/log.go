package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guilty-go/guilty/internal/genlog"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	DB    string // generation log database path
	Limit int    // max runs to show
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show generation history",
		Long: `Show recent generation runs recorded with generate --log-db.

Runs are listed newest first with their spec hash and output path.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "guilty.db", "generation log database path")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of runs to show")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		return outputCommandError(formatter, ErrCodeNotFound, fmt.Sprintf("generation log not found: %s", opts.DB), nil)
	}

	log, err := genlog.Open(opts.DB)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("opening generation log: %v", err), nil)
	}
	defer log.Close()

	runs, err := log.Recent(context.Background(), opts.Limit)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("reading generation log: %v", err), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}

	fmt.Fprintf(formatter.Writer, "%d run(s):\n\n", len(runs))
	for _, run := range runs {
		fmt.Fprintf(formatter.Writer, "  %s  %s\n    spec %s  guilty %s\n    %s\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.ID,
			shortHash(run.SpecHash),
			run.ToolVersion,
			run.OutputPath)
	}

	return nil
}

// shortHash abbreviates a spec hash for display.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
