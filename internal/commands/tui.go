package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todomaster/internal/config"
	"todomaster/internal/exitcode"
	"todomaster/internal/service"
	"todomaster/internal/ui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd implements the tui command.
type TuiCmd struct{}

func (c *TuiCmd) Name() string          { return "tui" }
func (c *TuiCmd) Aliases() []string     { return nil }
func (c *TuiCmd) Synopsis() string      { return "Open the interactive interface" }
func (c *TuiCmd) Usage() string         { return "todomaster tui" }
func (c *TuiCmd) Requires() Requirement { return RequiresStore }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, _ service.State, args []string, out, errOut io.Writer) int {
	st, err := svc.Restore(ctx)
	if err != nil {
		return ReportError(errOut, err)
	}
	if err := ui.Run(ctx, svc, st, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
