package commands

import (
	"context"
	"flag"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "ltask done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.TaskService, args []string, out, errOut io.Writer) int {
	ref, valid := parseRef(args, errOut)
	if !valid {
		return exitcode.UserError
	}

	if err := svc.Complete(ctx, ref.Selector()); err != nil {
		return reportStoreError(ctx, cfg, svc, c.Name(), ref, err, errOut)
	}

	printOK(cfg, out)
	return exitcode.Success
}
