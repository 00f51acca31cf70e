// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/dispatch"
	"todos/internal/exitcode"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the todo service.
	// Commands like help and version return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// d is nil if NeedsBackend() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, d dispatch.Dispatcher, args []string, out, errOut io.Writer) int
}

// await waits for the single result of a dispatch whose sender pairs with rx
// and reports an interrupted wait on errOut.
func await(ctx context.Context, d dispatch.Dispatcher, rx *dispatch.Receiver, errOut io.Writer) (dispatch.Result, int) {
	res, err := dispatch.Await(ctx, d, rx)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.BackendError
	}
	return res, exitcode.Success
}

// reportFailure prints a failed result and returns its exit code.
func reportFailure(errOut io.Writer, err error) int {
	code := exitcode.ForError(err)
	if code == exitcode.RejectedError {
		fmt.Fprintf(errOut, "error: rejected: %v\n", err)
	} else {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return code
}
