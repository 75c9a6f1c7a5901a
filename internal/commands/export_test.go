package commands

import "os"

// SetPasswordInput replaces the prompt source and returns a restore func.
func SetPasswordInput(f *os.File) func() {
	prev := passwordInput
	passwordInput = f
	return func() { passwordInput = prev }
}
