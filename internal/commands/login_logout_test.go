package commands_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"todomaster/internal/commands"
	"todomaster/internal/exitcode"
	"todomaster/internal/service"
	"todomaster/internal/store"
	"todomaster/internal/testutil"
)

func TestRegisterCommand_Success(t *testing.T) {
	svc := testutil.NewService(nil)

	stdout, stderr, code := runCommand(t, &commands.RegisterCmd{}, svc, service.State{}, []string{"alice", "pw1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "registered and logged in as alice\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if st := reload(t, svc); st.User != "alice" {
		t.Errorf("expected alice to be logged in, got %q", st.User)
	}
}

func TestRegisterCommand_Duplicate(t *testing.T) {
	svc, _ := loggedIn(t, nil)

	stdout, stderr, code := runCommand(t, &commands.RegisterCmd{}, svc, service.State{}, []string{"alice", "other"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: username already exists\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRegisterCommand_BlankUsername(t *testing.T) {
	svc := testutil.NewService(nil)

	_, stderr, code := runCommand(t, &commands.RegisterCmd{}, svc, service.State{}, []string{"  ", "pw"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: username required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestCredentials_MissingArguments(t *testing.T) {
	svc := testutil.NewService(nil)

	// A regular file is never a terminal, so there is no prompt.
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	defer commands.SetPasswordInput(f)()

	tests := []struct {
		args []string
		want string
	}{
		{nil, "error: username required\n"},
		{[]string{"alice"}, "error: password required\n"},
		{[]string{"alice", "pw", "extra"}, "error: too many arguments\n"},
	}

	for _, cmd := range []commands.Command{&commands.RegisterCmd{}, &commands.LoginCmd{}} {
		for _, tt := range tests {
			_, stderr, code := runCommand(t, cmd, svc, service.State{}, tt.args, false)
			if code != exitcode.UserError {
				t.Errorf("%s %q: expected exit code %d, got %d", cmd.Name(), tt.args, exitcode.UserError, code)
			}
			if stderr != tt.want {
				t.Errorf("%s %q: expected %q, got %q", cmd.Name(), tt.args, tt.want, stderr)
			}
		}
	}
}

func TestLoginCommand_Success(t *testing.T) {
	svc, _ := loggedIn(t, nil, "Buy milk")
	if _, err := svc.Logout(context.Background(), reload(t, svc)); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, service.State{}, []string{"alice", "pw1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "logged in as alice\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	st := reload(t, svc)
	if st.User != "alice" || len(st.Tasks) != 1 {
		t.Errorf("expected alice with 1 task, got %+v", st)
	}
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	svc, _ := loggedIn(t, nil)

	for _, args := range [][]string{{"alice", "wrong"}, {"nobody", "pw1"}, {"Alice", "pw1"}} {
		stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, service.State{}, args, false)

		if code != exitcode.AuthError {
			t.Errorf("%q: expected exit code %d, got %d", args, exitcode.AuthError, code)
		}
		if stdout != "" {
			t.Errorf("%q: expected no stdout, got %q", args, stdout)
		}
		if stderr != "error: invalid credentials\n" {
			t.Errorf("%q: unexpected stderr %q", args, stderr)
		}
	}

	// A failed login leaves the previous session in place.
	if st := reload(t, svc); st.User != "alice" {
		t.Errorf("expected alice to stay logged in, got %q", st.User)
	}
}

func TestLoginCommand_Quiet(t *testing.T) {
	svc, _ := loggedIn(t, nil)

	stdout, _, code := runCommand(t, &commands.LoginCmd{}, svc, service.State{}, []string{"alice", "pw1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestLogoutCommand(t *testing.T) {
	svc, _ := loggedIn(t, nil, "Buy milk")

	stdout, stderr, code := runCommand(t, &commands.LogoutCmd{}, svc, service.State{}, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if reload(t, svc).LoggedIn() {
		t.Error("expected logged out")
	}

	// Second logout is a no-op.
	stdout, _, code = runCommand(t, &commands.LogoutCmd{}, svc, service.State{}, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in\\n', got %q", stdout)
	}
}

func TestLogoutCommand_CorruptTasks(t *testing.T) {
	kv := store.NewMemory()
	svc, _ := loggedIn(t, kv)
	if err := kv.Set(context.Background(), "todos_alice", "{broken"); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := runCommand(t, &commands.LogoutCmd{}, svc, service.State{}, nil, true)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if _, ok, _ := kv.Get(context.Background(), "currentUser"); ok {
		t.Error("expected currentUser to be removed")
	}
	if raw, _, _ := kv.Get(context.Background(), "todos_alice"); raw != "{broken" {
		t.Error("logout must not touch task data")
	}
}

func TestLogoutCommand_StoreError(t *testing.T) {
	kv := testutil.NewFailingStore(nil)
	svc, _ := loggedIn(t, kv)
	kv.RemoveErr = testutil.ErrInjected

	_, stderr, code := runCommand(t, &commands.LogoutCmd{}, svc, service.State{}, nil, false)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if !strings.HasPrefix(stderr, "error: store error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestWhoamiCommand(t *testing.T) {
	svc, st := loggedIn(t, nil)

	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, svc, st, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "alice\n" {
		t.Errorf("expected 'alice\\n', got %q", stdout)
	}
}
