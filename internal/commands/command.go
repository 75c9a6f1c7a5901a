// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todomaster/internal/config"
	"todomaster/internal/service"
)

// Requirement says what the dispatcher must prepare before Run.
type Requirement int

const (
	// RequiresNothing commands get a nil service (help, version).
	RequiresNothing Requirement = iota

	// RequiresStore commands get an open service and a zero state.
	RequiresStore

	// RequiresSession commands get an open service and the restored,
	// logged-in state. The dispatcher rejects them when nobody is logged in.
	RequiresSession
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Requires reports what the command needs from the dispatcher.
	Requires() Requirement

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, logger).
	// svc is nil if Requires() returns RequiresNothing.
	// st is the restored session for RequiresSession commands.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, st service.State, args []string, out, errOut io.Writer) int
}
