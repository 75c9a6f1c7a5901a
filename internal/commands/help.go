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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string          { return "help" }
func (c *HelpCmd) Aliases() []string     { return nil }
func (c *HelpCmd) Synopsis() string      { return "Print usage" }
func (c *HelpCmd) Usage() string         { return "todomaster help" }
func (c *HelpCmd) Requires() Requirement { return RequiresNothing }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, _ service.State, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todomaster                                   List tasks of the current user
  todomaster register [common flags] <username> [password]
  todomaster login [common flags] <username> [password]
  todomaster logout [common flags]
  todomaster whoami [common flags]
  todomaster list [common flags] [--open]
  todomaster add [common flags] <text...>      (alias: create)
  todomaster toggle [common flags] <ref>       (alias: done)
  todomaster rm [common flags] <ref>           (alias: delete)
  todomaster stats [common flags]
  todomaster export [common flags] [--format json|yaml]
  todomaster verify [common flags]
  todomaster tui [common flags]
  todomaster help
  todomaster version

A <ref> is a task number as printed by list, or @<id>.
A missing password is prompted for when stdin is a terminal.

Common flags:
  --config <dir>     Override config directory
  --backend <name>   Storage backend: file, sqlite or memory
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
