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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string          { return "login" }
func (c *LoginCmd) Aliases() []string     { return nil }
func (c *LoginCmd) Synopsis() string      { return "Log in to an existing account" }
func (c *LoginCmd) Usage() string         { return "todomaster login <username> [password]" }
func (c *LoginCmd) Requires() Requirement { return RequiresStore }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, _ service.State, args []string, out, errOut io.Writer) int {
	username, password, err := readCredentials(args, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	st, err := svc.Login(ctx, username, password)
	if err != nil {
		return ReportError(errOut, err)
	}
	cfg.Logger().Debug("logged in", zap.String("user", st.User), zap.Int("count", len(st.Tasks)))

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", st.User)
	}
	return exitcode.Success
}
