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
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
}

// SetFormat sets the --format flag (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

func (c *ExportCmd) Name() string          { return "export" }
func (c *ExportCmd) Aliases() []string     { return nil }
func (c *ExportCmd) Synopsis() string      { return "Write the current user's tasks as JSON or YAML" }
func (c *ExportCmd) Usage() string         { return "todomaster export [--format json|yaml]" }
func (c *ExportCmd) Requires() Requirement { return RequiresSession }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatJSON, "")
	fs.StringVar(&c.format, "f", output.FormatJSON, "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, st service.State, args []string, out, errOut io.Writer) int {
	format := c.format
	if format == "" {
		format = output.FormatJSON
	}
	if format != output.FormatJSON && format != output.FormatYAML {
		fmt.Fprintf(errOut, "error: unknown format: %s\n", format)
		return exitcode.UserError
	}

	doc := output.Export{
		User:  st.User,
		Stats: tasks.Summarize(st.Tasks),
		Tasks: st.Tasks,
	}
	if err := output.WriteExport(out, format, doc); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
