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
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace the text of a task" }
func (c *EditCmd) Usage() string     { return "ltask edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.TaskService, args []string, out, errOut io.Writer) int {
	ref, valid := parseRef(args, errOut)
	if !valid {
		return exitcode.UserError
	}
	text := strings.Join(args[1:], " ")

	// The reference is checked even when text is blank.
	changed, err := svc.Edit(ctx, ref.Selector(), text)
	if err != nil {
		return reportStoreError(ctx, cfg, svc, c.Name(), ref, err, errOut)
	}
	if changed {
		printOK(cfg, out)
	}
	return exitcode.Success
}
