// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad task ref, username taken).
	UserError = 1

	// AuthError indicates invalid credentials or a missing session.
	AuthError = 2

	// StoreError indicates an unreadable, unwritable or corrupt store.
	StoreError = 3

	// VerifyFailed indicates verify found problems in the store.
	VerifyFailed = 4
)
