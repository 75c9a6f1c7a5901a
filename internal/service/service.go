// Package service defines the domain types and the interface the UI layers use.
package service

import "context"

// Service defines the session-level operations available to the UI.
// Commands and the interactive UI never touch the key-value store directly.
type Service interface {
	// Restore returns the state persisted by a previous run.
	// A session naming an unknown account is cleared and reported as logged out.
	Restore(ctx context.Context) (State, error)

	// Register creates an account and starts a session for it.
	Register(ctx context.Context, username, password string) (State, error)

	// Login authenticates and starts a session, loading the user's tasks.
	Login(ctx context.Context, username, password string) (State, error)

	// Logout ends the session. Stored tasks are kept.
	Logout(ctx context.Context, st State) (State, error)

	// AddTask appends a task. Blank text leaves the state unchanged.
	AddTask(ctx context.Context, st State, text string) (State, error)

	// ToggleTask flips the completed flag of the task with the given id.
	ToggleTask(ctx context.Context, st State, id int64) (State, error)

	// DeleteTask removes the task with the given id.
	DeleteTask(ctx context.Context, st State, id int64) (State, error)

	// Verify checks every stored value and returns the problems found.
	Verify(ctx context.Context) ([]Problem, error)

	// Close releases the underlying store.
	Close() error
}
