package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/guilty-go/guilty/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands format their own errors and return an ExitError for the
		// code; anything else (flag parsing, format validation) still needs
		// printing here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
