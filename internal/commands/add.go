package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todos/internal/config"
	"todos/internal/dispatch"
	"todos/internal/exitcode"
	"todos/internal/output"
	"todos/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	content string
}

// SetContent sets the todo content (for testing).
func (c *AddCmd) SetContent(content string) {
	c.content = content
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a todo" }
func (c *AddCmd) Usage() string      { return "todos add --content <text> <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.content, "content", "", "")
	fs.StringVar(&c.content, "c", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, d dispatch.Dispatcher, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	content := strings.TrimSpace(c.content)
	if content == "" {
		fmt.Fprintln(errOut, "error: content required")
		return exitcode.UserError
	}

	tx, rx := dispatch.NewChannel()
	defer rx.Close()
	d.CreateTodo(service.NewTodo(title, content), tx)

	res, code := await(ctx, d, rx, errOut)
	if code != exitcode.Success {
		return code
	}
	created := res.(dispatch.CreateResult)
	if created.Err != nil {
		return reportFailure(errOut, created.Err)
	}

	if !cfg.Quiet {
		output.FormatCreated(out, created.Todo)
	}
	return exitcode.Success
}
