package commands

import (
	"errors"
	"fmt"
	"io"

	"todomaster/internal/accounts"
	"todomaster/internal/exitcode"
	"todomaster/internal/session"
)

// NotLoggedInMessage is printed when a command needs a session.
const NotLoggedInMessage = "error: not logged in (run: todomaster login)"

// ReportError prints err as a single "error: ..." line and returns the
// matching exit code.
func ReportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, accounts.ErrUsernameTaken),
		errors.Is(err, accounts.ErrInvalidUsername),
		errors.Is(err, accounts.ErrPasswordTooLong):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, accounts.ErrInvalidCredentials):
		fmt.Fprintln(errOut, "error: invalid credentials")
		return exitcode.AuthError
	case errors.Is(err, session.ErrNotLoggedIn):
		fmt.Fprintln(errOut, NotLoggedInMessage)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.StoreError
	}
}
