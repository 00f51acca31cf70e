package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/dispatch"
	"todos/internal/exitcode"
	"todos/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	verbose bool
}

// SetVerbose sets verbose output (for testing).
func (c *ListCmd) SetVerbose(v bool) {
	c.verbose = v
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List todos" }
func (c *ListCmd) Usage() string      { return "todos list [--verbose]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, d dispatch.Dispatcher, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tx, rx := dispatch.NewChannel()
	defer rx.Close()
	d.FetchTodos(tx)

	res, code := await(ctx, d, rx, errOut)
	if code != exitcode.Success {
		return code
	}
	list := res.(dispatch.ListResult)
	if list.Err != nil {
		return reportFailure(errOut, list.Err)
	}

	if len(list.Todos) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no todos found")
		}
		return exitcode.Success
	}

	for i, todo := range list.Todos {
		if c.verbose {
			output.FormatTodoVerbose(out, i+1, todo)
		} else {
			output.FormatTodo(out, i+1, todo)
		}
	}
	return exitcode.Success
}
