package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todomaster/internal/config"
	"todomaster/internal/exitcode"
	"todomaster/internal/output"
	"todomaster/internal/service"
	"todomaster/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todomaster` (no args) and `todomaster list`.
type ListCmd struct {
	open bool
}

// SetOpen sets the --open flag (for testing).
func (c *ListCmd) SetOpen(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string          { return "list" }
func (c *ListCmd) Aliases() []string     { return nil }
func (c *ListCmd) Synopsis() string      { return "List tasks" }
func (c *ListCmd) Usage() string         { return "todomaster list [--open]" }
func (c *ListCmd) Requires() Requirement { return RequiresSession }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, st service.State, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if len(st.Tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks yet")
		}
		return exitcode.Success
	}

	// Positions always count the full list so refs stay stable under --open.
	for i, task := range st.Tasks {
		if c.open && task.Completed {
			continue
		}
		output.FormatTask(out, i+1, task)
	}
	output.FormatProgress(out, tasks.Summarize(st.Tasks))
	return exitcode.Success
}
