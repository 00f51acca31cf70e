// Package cli parses the command line and runs commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"todos/internal/commands"
	"todos/internal/config"
	"todos/internal/dispatch"
	"todos/internal/exitcode"
)

// DispatcherFactory creates a Dispatcher from config.
// Used to inject the backend when a command needs one.
type DispatcherFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dispatch.Dispatcher, error)

// Runner handles command-line parsing and dispatch.
type Runner struct {
	registry *commands.Registry
	factory  DispatcherFactory
}

// NewRunner creates a new runner with the given registry and dispatcher factory.
func NewRunner(registry *commands.Registry, factory DispatcherFactory) *Runner {
	return &Runner{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and runs the appropriate command.
// Returns the exit code.
func (r *Runner) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := r.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return r.runCommand(ctx, cmd, args[1:], out, errOut)
}

func (r *Runner) runCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var (
		endpoint string
		host     string
		workers  int
		quiet    bool
		debug    bool
	)
	fs.StringVar(&endpoint, "endpoint", "", "")
	fs.StringVar(&host, "host", config.DefaultHost.String(), "")
	fs.IntVar(&workers, "workers", 0, "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		errStr := err.Error()

		if strings.HasPrefix(errStr, "flag needs an argument:") {
			flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
			return exitcode.UserError
		}
		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return exitcode.UserError
	}

	// A leading "-" after flag parsing was a flag in the wrong place
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(endpoint)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if cfg.Host, err = config.ParseHost(host); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if workers < 0 {
		fmt.Fprintf(errOut, "error: invalid worker count: %d\n", workers)
		return exitcode.UserError
	}
	cfg.Workers = workers
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := NewLogger(errOut, debug)

	var d dispatch.Dispatcher
	if cmd.NeedsBackend() {
		d, err = r.factory(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
		logger.Debug("dispatcher ready", "host", cfg.Host, "endpoint", cfg.Endpoint, "workers", cfg.Workers)
	}

	return cmd.Run(ctx, cfg, d, positionalArgs, out, errOut)
}

// NewLogger returns the CLI logger: text on w, debug level when debug is set,
// otherwise warnings and above.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
