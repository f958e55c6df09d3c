package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "ltask help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.TaskService, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  ltask [common flags]                     List tasks
  ltask list [common flags] [--ids]        List tasks, optionally with their ids
  ltask add [common flags] <text...>       Add a task
  ltask edit [common flags] <ref> <text...>
                                           Replace the text of a task (full store)
  ltask done [common flags] <ref>          Mark a task completed (full store)
  ltask rm [common flags] <ref>            Delete a task
  ltask weather [common flags] <city...>   Show the current weather for a city
  ltask help
  ltask version

A <ref> is a task number as shown by list, or a task id (full store).

Common flags:
  --config <dir>          Override config directory
  --store <full|basic>    Select the task store (default: full)
  --quiet                 Suppress informational output
  --debug                 Print debug logs to stderr
`
