package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"todomaster/internal/config"
	"todomaster/internal/exitcode"
	"todomaster/internal/service"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string          { return "logout" }
func (c *LogoutCmd) Aliases() []string     { return nil }
func (c *LogoutCmd) Synopsis() string      { return "End the current session" }
func (c *LogoutCmd) Usage() string         { return "todomaster logout [common flags]" }
func (c *LogoutCmd) Requires() Requirement { return RequiresStore }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, _ service.State, args []string, out, errOut io.Writer) int {
	// A corrupt task collection must not keep the user from logging out.
	st, err := svc.Restore(ctx)
	if err != nil {
		cfg.Logger().Debug("restore failed, logging out anyway", zap.Error(err))
	} else if !st.LoggedIn() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if _, err := svc.Logout(ctx, st); err != nil {
		return ReportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
