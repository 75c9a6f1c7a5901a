package commands

import (
	"context"
	"flag"
	"io"

	"todomaster/internal/config"
	"todomaster/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string          { return "toggle" }
func (c *ToggleCmd) Aliases() []string     { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string      { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string         { return "todomaster toggle <ref>" }
func (c *ToggleCmd) Requires() Requirement { return RequiresSession }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, st service.State, args []string, out, errOut io.Writer) int {
	return runTaskOp(ctx, cfg, st, args, svc.ToggleTask, out, errOut)
}
