package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "ltask add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run appends the joined args as a new task. Blank text is ignored
// silently and still exits 0.
func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.TaskService, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")

	added, err := svc.Add(ctx, text)
	if err != nil {
		return reportStoreError(ctx, cfg, svc, c.Name(), TaskRef{}, err, errOut)
	}
	if added {
		printOK(cfg, out)
	}
	return exitcode.Success
}
