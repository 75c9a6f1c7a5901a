package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"todomaster/internal/config"
	"todomaster/internal/exitcode"
	"todomaster/internal/service"
)

// taskOp is a facade operation addressing one task by id.
type taskOp func(ctx context.Context, st service.State, id int64) (service.State, error)

// runTaskOp is the shared implementation for toggle and rm.
func runTaskOp(ctx context.Context, cfg *config.Config, st service.State, args []string, op taskOp, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	task, err := ref.Resolve(st.Tasks)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	cfg.Logger().Debug("resolved task", zap.Int64("id", task.ID), zap.Bool("by_id", ref.ByID))

	if _, err := op(ctx, st, task.ID); err != nil {
		return ReportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
