package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var (
	errUsernameRequired = errors.New("username required")
	errPasswordRequired = errors.New("password required")
	errTooManyArguments = errors.New("too many arguments")
)

// passwordInput is where a missing password is prompted from.
// Tests leave it pointing at a non-terminal stdin.
var passwordInput = os.Stdin

// readCredentials takes <username> [password] from args. A missing password
// is prompted for without echo when stdin is a terminal.
func readCredentials(args []string, errOut io.Writer) (username, password string, err error) {
	switch len(args) {
	case 0:
		return "", "", errUsernameRequired
	case 1:
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", errTooManyArguments
	}

	fd := int(passwordInput.Fd())
	if !term.IsTerminal(fd) {
		return "", "", errPasswordRequired
	}
	fmt.Fprint(errOut, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(errOut)
	if err != nil {
		return "", "", fmt.Errorf("read password: %w", err)
	}
	return args[0], string(b), nil
}
