// Package main is the entry point for the todomaster CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"todomaster/internal/cli"
	"todomaster/internal/commands"
)

func main() {
	// TODOMASTER_* settings may come from a .env in the working directory.
	_ = godotenv.Load() // ignore error if no .env

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Commands register themselves with the default registry via init()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.OpenService)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
