package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"todomaster/internal/accounts"
	"todomaster/internal/commands"
	"todomaster/internal/config"
	"todomaster/internal/exitcode"
	"todomaster/internal/logging"
	"todomaster/internal/service"
	"todomaster/internal/session"
	"todomaster/internal/store"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// OpenService is the production ServiceFactory: it opens the configured
// store backend and wraps it in a session.Store.
func OpenService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	kv, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return session.New(kv, session.Options{
		Hasher: accounts.BcryptHasher{Cost: cfg.BcryptCost},
		Log:    cfg.Logger(),
	}), nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service
// factory. A nil factory means OpenService.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	if factory == nil {
		factory = OpenService
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir, backend string
	var quiet, debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&backend, "backend", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		reportFlagError(errOut, err)
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %s\n", err)
		return exitcode.UserError
	}
	if backend != "" {
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(errOut, "error: config error: %s\n", err)
			return exitcode.UserError
		}
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.Log = logging.New(errOut, debug)
	defer func() { _ = cfg.Log.Sync() }()

	log := cfg.Logger().With(zap.String("command", cmd.Name()))
	log.Debug("dispatch", zap.String("backend", cfg.Backend), zap.String("dir", cfg.Dir))

	if cmd.Requires() == commands.RequiresNothing {
		return cmd.Run(ctx, cfg, nil, service.State{}, positionalArgs, out, errOut)
	}

	svc, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.StoreError
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Debug("close failed", zap.Error(err))
		}
	}()

	var st service.State
	if cmd.Requires() == commands.RequiresSession {
		st, err = svc.Restore(ctx)
		if err != nil {
			return commands.ReportError(errOut, err)
		}
		if !st.LoggedIn() {
			fmt.Fprintln(errOut, commands.NotLoggedInMessage)
			return exitcode.AuthError
		}
		log.Debug("session restored", zap.String("user", st.User), zap.Int("count", len(st.Tasks)))
	}

	return cmd.Run(ctx, cfg, svc, st, positionalArgs, out, errOut)
}

func reportFlagError(errOut io.Writer, err error) {
	errStr := err.Error()

	// Check for missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
		return
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
}
