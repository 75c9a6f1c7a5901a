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
	Register(&VerifyCmd{})
}

// VerifyCmd implements the verify command.
type VerifyCmd struct{}

func (c *VerifyCmd) Name() string          { return "verify" }
func (c *VerifyCmd) Aliases() []string     { return nil }
func (c *VerifyCmd) Synopsis() string      { return "Check stored values for corruption" }
func (c *VerifyCmd) Usage() string         { return "todomaster verify" }
func (c *VerifyCmd) Requires() Requirement { return RequiresStore }

func (c *VerifyCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VerifyCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, _ service.State, args []string, out, errOut io.Writer) int {
	problems, err := svc.Verify(ctx)
	if err != nil {
		return ReportError(errOut, err)
	}

	if len(problems) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success
	}

	for _, p := range problems {
		fmt.Fprintf(out, "%s: %s\n", p.Key, p.Message)
	}
	fmt.Fprintf(errOut, "error: %d problem(s) found\n", len(problems))
	return exitcode.VerifyFailed
}
