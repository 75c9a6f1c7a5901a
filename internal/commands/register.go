package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todomaster/internal/config"
	"todomaster/internal/exitcode"
	"todomaster/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string          { return "register" }
func (c *RegisterCmd) Aliases() []string     { return nil }
func (c *RegisterCmd) Synopsis() string      { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string         { return "todomaster register <username> [password]" }
func (c *RegisterCmd) Requires() Requirement { return RequiresStore }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, _ service.State, args []string, out, errOut io.Writer) int {
	username, password, err := readCredentials(args, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	st, err := svc.Register(ctx, username, password)
	if err != nil {
		return ReportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "registered and logged in as %s\n", st.User)
	}
	return exitcode.Success
}
