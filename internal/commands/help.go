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

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todos help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, d dispatch.Dispatcher, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  todos                Same as todos list")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-20s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

const commonFlagsText = `
Common flags:
  --endpoint <url>   Todo collection URL (default ` + config.DefaultEndpoint + `)
  --host <name>      threaded or cooperative
  --workers <n>      Max concurrent requests on the threaded host (0 = unlimited)
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
