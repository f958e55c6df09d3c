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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "ltask rm <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.TaskService, args []string, out, errOut io.Writer) int {
	ref, valid := parseRef(args, errOut)
	if !valid {
		return exitcode.UserError
	}

	if err := svc.Delete(ctx, ref.Selector()); err != nil {
		return reportStoreError(ctx, cfg, svc, c.Name(), ref, err, errOut)
	}

	printOK(cfg, out)
	return exitcode.Success
}
