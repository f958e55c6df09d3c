package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/output"
	"ltask/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `ltask` (no args) and `ltask list`.
type ListCmd struct {
	ids bool
}

// SetShowIDs enables the task id column (for testing).
func (c *ListCmd) SetShowIDs(show bool) {
	c.ids = show
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "ltask list [--ids]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.ids, "ids", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.TaskService, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	entries, err := svc.List(ctx)
	if err != nil {
		return reportStoreError(ctx, cfg, svc, c.Name(), TaskRef{}, err, errOut)
	}

	if len(entries) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.NoTasks)
		}
		return exitcode.Success
	}

	if !c.ids {
		output.FormatEntries(out, entries)
		return exitcode.Success
	}
	for _, e := range entries {
		output.FormatEntryVerbose(out, e)
	}
	return exitcode.Success
}
