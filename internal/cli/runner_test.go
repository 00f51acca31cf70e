package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"todos/internal/backend/httpapi"
	"todos/internal/cli"
	"todos/internal/commands"
	"todos/internal/config"
	"todos/internal/dispatch"
	"todos/internal/exitcode"
	"todos/internal/testutil"
)

// testFactory creates a dispatcher factory backed by the given FakeService
// and records the config it was called with.
func testFactory(svc *testutil.FakeService, seen **config.Config) cli.DispatcherFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dispatch.Dispatcher, error) {
		if seen != nil {
			*seen = cfg
		}
		return dispatch.New(cfg, svc, logger), nil
	}
}

func run(t *testing.T, factory cli.DispatcherFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	runner := cli.NewRunner(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = runner.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestRunner_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestRunner_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestRunner_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTodo("a", "x", false)

	stdout, stderr, code := run(t, testFactory(svc, nil))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] a\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestRunner_VersionSkipsBackend(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dispatch.Dispatcher, error) {
		t.Error("factory should not be called for version")
		return nil, errors.New("unexpected")
	}

	stdout, _, code := run(t, factory, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todos 0.1.0\n" {
		t.Errorf("expected 'todos 0.1.0\\n', got %q", stdout)
	}
}

func TestRunner_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestRunner_MissingFlagValue(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "add", "--content")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -content\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestRunner_CommonFlags(t *testing.T) {
	var seen *config.Config
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, testFactory(svc, &seen),
		"list", "--endpoint", "http://localhost:9999/api/todos", "--host", "cooperative", "--workers", "4", "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if seen == nil {
		t.Fatal("factory was not called")
	}
	if seen.Endpoint != "http://localhost:9999/api/todos" || seen.Host != config.Cooperative || seen.Workers != 4 || !seen.Quiet {
		t.Errorf("unexpected config %+v", *seen)
	}
}

func TestRunner_InvalidHost(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "list", "--host", "green")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown host: green\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRunner_InvalidEndpoint(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "list", "--endpoint", "ftp://x/todos")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid endpoint") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRunner_DebugLogs(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "list", "--debug", "--quiet")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "dispatcher ready") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

// End to end through the real HTTP client against the fake server.
func TestRunner_AddAndListOverHTTP(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dispatch.Dispatcher, error) {
		client := httpapi.NewWithHTTPClient(srv.Client(), cfg.Endpoint, logger)
		return dispatch.New(cfg, client, logger), nil
	}

	for _, host := range []string{"threaded", "cooperative"} {
		stdout, stderr, code := run(t, factory, "add", "--endpoint", srv.Endpoint(), "--host", host, "-c", "2%", "buy", "milk")
		if code != exitcode.Success {
			t.Fatalf("%s add: exit %d (%s)", host, code, stderr)
		}
		if !strings.HasPrefix(stdout, "created ") || !strings.HasSuffix(stdout, ": buy milk\n") {
			t.Errorf("%s add: unexpected stdout %q", host, stdout)
		}
	}

	stdout, stderr, code := run(t, factory, "list", "--endpoint", srv.Endpoint())
	if code != exitcode.Success {
		t.Fatalf("list: exit %d (%s)", code, stderr)
	}
	expected := "   1  [ ] buy milk\n   2  [ ] buy milk\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestRunner_RejectedOverHTTP(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.Status = "fail"
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dispatch.Dispatcher, error) {
		return dispatch.New(cfg, httpapi.NewWithHTTPClient(srv.Client(), cfg.Endpoint, logger), logger), nil
	}

	_, stderr, code := run(t, factory, "add", "--endpoint", srv.Endpoint(), "-c", "body", "title")

	if code != exitcode.RejectedError {
		t.Errorf("expected exit code %d, got %d", exitcode.RejectedError, code)
	}
	if stderr != "error: rejected: request failed: unknown error\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
