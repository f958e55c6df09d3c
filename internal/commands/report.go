package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/logging"
	"ltask/internal/service"
	"ltask/internal/todo"
)

// parseRef parses the task reference in args, printing the error on failure.
// On false the command exits with exitcode.UserError.
func parseRef(args []string, errOut io.Writer) (TaskRef, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return TaskRef{}, false
	}
	if ref.ID == "" && ref.Num < 1 {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Num)
		return TaskRef{}, false
	}
	return ref, true
}

// reportStoreError prints a store failure and returns its exit code.
func reportStoreError(ctx context.Context, cfg *config.Config, svc service.TaskService, op string, ref TaskRef, err error, errOut io.Writer) int {
	logging.Error(ctx, cfg.Logger, err)

	switch {
	case errors.Is(err, todo.ErrOutOfRange):
		fmt.Fprintf(errOut, "error: task number out of range: %s\n", ref)
		return exitcode.UserError
	case errors.Is(err, todo.ErrNotFound):
		fmt.Fprintf(errOut, "error: task not found: %s\n", ref)
		return exitcode.UserError
	case errors.Is(err, todo.ErrInvalidText):
		fmt.Fprintln(errOut, "error: task text is not valid UTF-8")
		return exitcode.UserError
	case errors.Is(err, todo.ErrUnsupported):
		fmt.Fprintf(errOut, "error: %s is not supported by the %s store\n", op, svc.Variant())
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// printOK prints the mutation acknowledgement unless quiet.
func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
