// Package main is the entry point for the todos CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"todos/internal/backend/httpapi"
	"todos/internal/cli"
	"todos/internal/commands"
	"todos/internal/config"
	"todos/internal/dispatch"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dispatch.Dispatcher, error) {
		client, err := httpapi.New(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return dispatch.New(cfg, client, logger), nil
	}

	runner := cli.NewRunner(commands.DefaultRegistry, factory)

	code := runner.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
