package commands

import (
	"context"
	"flag"
	"io"

	"todomaster/internal/config"
	"todomaster/internal/exitcode"
	"todomaster/internal/output"
	"todomaster/internal/service"
	"todomaster/internal/tasks"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string          { return "stats" }
func (c *StatsCmd) Aliases() []string     { return nil }
func (c *StatsCmd) Synopsis() string      { return "Show task totals" }
func (c *StatsCmd) Usage() string         { return "todomaster stats" }
func (c *StatsCmd) Requires() Requirement { return RequiresSession }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, st service.State, args []string, out, errOut io.Writer) int {
	output.FormatStats(out, tasks.Summarize(st.Tasks))
	return exitcode.Success
}
