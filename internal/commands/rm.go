package commands

import (
	"context"
	"flag"
	"io"

	"todomaster/internal/config"
	"todomaster/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string          { return "rm" }
func (c *RmCmd) Aliases() []string     { return []string{"delete"} }
func (c *RmCmd) Synopsis() string      { return "Delete a task" }
func (c *RmCmd) Usage() string         { return "todomaster rm <ref>" }
func (c *RmCmd) Requires() Requirement { return RequiresSession }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, st service.State, args []string, out, errOut io.Writer) int {
	return runTaskOp(ctx, cfg, st, args, svc.DeleteTask, out, errOut)
}
