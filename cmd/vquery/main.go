package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vquery/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitError carries a non-zero exit status without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vquery",
		Short: "Query key and environment tooling",
		Long: `vquery works with the data-fetching helpers from the command line.

  • Fingerprint query keys the way the cache does
  • Compare values with deep equality and inclusion
  • Serve the environment report endpoint with metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		fingerprintCmd(),
		equalCmd(),
		includesCmd(),
		serveCmd(),
		versionCmd(),
	)

	return rootCmd
}

// report prints err to w and returns the process exit code.
func report(w io.Writer, err error) int {
	var exit *exitError
	if stderrors.As(err, &exit) {
		return exit.code
	}

	var verr *errors.Error
	if stderrors.As(err, &verr) {
		fmt.Fprintln(w, verr.Format())
		return 1
	}

	fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
	return 1
}
