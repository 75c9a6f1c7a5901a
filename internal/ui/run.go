// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"todomaster/internal/service"
)

// ErrNotTTY is returned by Run when out is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// Run starts the interactive UI on out with st as the initial session and
// blocks until the user quits.
func Run(ctx context.Context, svc service.Service, st service.State, out io.Writer) error {
	if !IsTTY(out) {
		return ErrNotTTY
	}
	program := tea.NewProgram(New(ctx, svc, st), tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	_, err := program.Run()
	return err
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
