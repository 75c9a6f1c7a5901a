package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todomaster/internal/cli"
	"todomaster/internal/commands"
	"todomaster/internal/config"
	"todomaster/internal/exitcode"
	"todomaster/internal/service"
	"todomaster/internal/testutil"
)

// testDir returns a config dir whose config.toml keeps bcrypt cheap.
func testDir(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	body := "bcrypt_cost = 4\n" + extra
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

// run dispatches args with --config dir through the production factory.
func run(t *testing.T, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	return runWith(t, nil, dir, args...)
}

func runWith(t *testing.T, factory cli.ServiceFactory, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	if len(args) > 0 && dir != "" {
		args = append([]string{args[0], "--config", dir}, args[1:]...)
	}
	var outBuf, errBuf bytes.Buffer
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, "", "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, "", "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, testDir(t, ""), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, _, code := run(t, testDir(t, ""), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todomaster 0.1.0\n" {
		t.Errorf("expected 'todomaster 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testDir(t, ""), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := runWith(t, nil, "", "export", "--format")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -format\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_BadBackend(t *testing.T) {
	_, stderr, code := run(t, testDir(t, ""), "list", "--backend", "redis")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: config error: unknown backend: redis\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_NotLoggedIn(t *testing.T) {
	dir := testDir(t, "")

	for _, name := range []string{"list", "add", "toggle", "rm", "stats", "export", "whoami"} {
		stdout, stderr, code := run(t, dir, name, "1")
		if code != exitcode.AuthError {
			t.Errorf("%s: expected exit code %d, got %d", name, exitcode.AuthError, code)
		}
		if stdout != "" {
			t.Errorf("%s: expected no stdout, got %q", name, stdout)
		}
		if stderr != "error: not logged in (run: todomaster login)\n" {
			t.Errorf("%s: unexpected stderr %q", name, stderr)
		}
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	// No args means "list" in the default config dir.
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir := filepath.Join(base, "todomaster")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("bcrypt_cost = 4\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, stderr, code := run(t, "", "register", "alice", "pw1"); code != exitcode.Success {
		t.Fatalf("register failed: %q", stderr)
	}
	if _, stderr, code := run(t, "", "add", "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("add failed: %q", stderr)
	}

	stdout, stderr, code := run(t, "")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "   1  [ ] Buy milk\n0 of 1 tasks completed\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

// TestDispatcher_AliceRoundTrip walks a full session across separate
// invocations, each of which reopens the store from disk.
func TestDispatcher_AliceRoundTrip(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir := testDir(t, "backend = \""+backend+"\"\n")

			steps := []struct {
				args []string
				code int
				out  string
			}{
				{[]string{"register", "alice", "pw1"}, exitcode.Success, "registered and logged in as alice\n"},
				{[]string{"logout"}, exitcode.Success, "ok\n"},
				{[]string{"login", "alice", "pw1"}, exitcode.Success, "logged in as alice\n"},
				{[]string{"list"}, exitcode.Success, "no tasks yet\n"},
				{[]string{"add", "Buy", "milk"}, exitcode.Success, "ok\n"},
				{[]string{"toggle", "1"}, exitcode.Success, "ok\n"},
				{[]string{"logout"}, exitcode.Success, "ok\n"},
				{[]string{"login", "alice", "pw1"}, exitcode.Success, "logged in as alice\n"},
				{[]string{"list"}, exitcode.Success, "   1  [x] Buy milk\n1 of 1 tasks completed\n"},
				{[]string{"whoami"}, exitcode.Success, "alice\n"},
				{[]string{"verify"}, exitcode.Success, "ok\n"},
			}

			for _, s := range steps {
				stdout, stderr, code := run(t, dir, s.args...)
				if code != s.code {
					t.Fatalf("%q: expected exit code %d, got %d (stderr %q)", s.args, s.code, code, stderr)
				}
				if stdout != s.out {
					t.Errorf("%q: expected %q, got %q", s.args, s.out, stdout)
				}
			}
		})
	}
}

func TestDispatcher_BobDuplicate(t *testing.T) {
	dir := testDir(t, "")

	if _, _, code := run(t, dir, "register", "bob", "x"); code != exitcode.Success {
		t.Fatalf("first register failed with %d", code)
	}

	_, stderr, code := run(t, dir, "register", "bob", "y")
	if code != exitcode.UserError || stderr != "error: username already exists\n" {
		t.Errorf("duplicate register: got %d %q", code, stderr)
	}

	_, stderr, code = run(t, dir, "login", "bob", "y")
	if code != exitcode.AuthError || stderr != "error: invalid credentials\n" {
		t.Errorf("wrong password: got %d %q", code, stderr)
	}

	if _, _, code := run(t, dir, "login", "bob", "x"); code != exitcode.Success {
		t.Errorf("login with original password failed with %d", code)
	}
}

func TestDispatcher_QuietAndDebug(t *testing.T) {
	dir := testDir(t, "")

	stdout, stderr, code := run(t, dir, "register", "--quiet", "--debug", "alice", "pw1")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
	for _, want := range []string{"dispatch", "invocation", `"command": "register"`} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected debug log to contain %s, got:\n%s", want, stderr)
		}
	}
}

func TestDispatcher_MemoryBackendDoesNotPersist(t *testing.T) {
	dir := testDir(t, "")

	if _, _, code := run(t, dir, "register", "--backend", "memory", "alice", "pw1"); code != exitcode.Success {
		t.Fatalf("register failed with %d", code)
	}
	if _, _, code := run(t, dir, "list", "--backend", "memory"); code != exitcode.AuthError {
		t.Errorf("expected memory session to be gone, got %d", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "store.json")); !os.IsNotExist(err) {
		t.Errorf("memory backend must not write store.json, stat err = %v", err)
	}
}

func TestDispatcher_CorruptStore(t *testing.T) {
	dir := testDir(t, "")
	if err := os.WriteFile(filepath.Join(dir, "store.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, dir, "list")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if !strings.HasPrefix(stderr, "error: store error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, testutil.ErrInjected
	}

	_, stderr, code := runWith(t, factory, testDir(t, ""), "verify")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: store error: injected store failure\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_InjectedFactory(t *testing.T) {
	kv := testutil.NewFailingStore(nil)
	svc := testutil.NewService(kv)
	if _, err := svc.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatal(err)
	}
	kv.FailGet("todos_alice")

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}

	_, stderr, code := runWith(t, factory, testDir(t, ""), "list")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if !strings.Contains(stderr, "injected store failure") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
