package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/backend/placeholder"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// run dispatches args with an isolated config directory.
func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("TODO_BASE_URL", "")
	t.Setenv("TODO_TASK_LIMIT", "")
	t.Setenv("TODO_OWNER_LIMIT", "")

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "1", "a", false)
	svc.AddOwner("1", "Bob")

	// No args cannot carry --config, so point the default dir somewhere empty.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	stdout, stderr, code := run(t, testFactory(svc))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "[ ]    1  a  by Bob\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "help", "--config", t.TempDir())

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
	stdout, _, code := run(t, nil, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected %q, got %q", "todo 0.1.0\n", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "version", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_LeftoverFlag(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "done", "--config", t.TempDir(), "--", "-1")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown flag: -1\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_TooManyArguments(t *testing.T) {
	svc := testutil.NewFakeService()
	_, stderr, code := run(t, testFactory(svc), "done", "--config", t.TempDir(), "1", "2")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: too many arguments: 2\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Completed) != 0 {
		t.Error("expected no update call")
	}
}

func TestDispatcher_ConfigError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("task_limit: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr, "error: config error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_InvalidBaseURL(t *testing.T) {
	svc := testutil.NewFakeService()
	factoryCalled := false
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		factoryCalled = true
		return svc, nil
	}

	t.Run("config file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("base_url: \"not a url\"\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		_, stderr, code := run(t, factory, "list", "--config", dir)

		if code != exitcode.ConfigError {
			t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
		}
		if stderr != "error: config error: invalid base_url: not a url\n" {
			t.Errorf("unexpected stderr %q", stderr)
		}
	})

	t.Run("environment", func(t *testing.T) {
		dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
		t.Setenv("TODO_BASE_URL", "not a url")

		var stdout, stderr bytes.Buffer
		code := dispatcher.Run(context.Background(), []string{"list", "--config", t.TempDir()}, &stdout, &stderr)

		if code != exitcode.ConfigError {
			t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
		}
		if stderr.String() != "error: config error: invalid base_url: not a url\n" {
			t.Errorf("unexpected stderr %q", stderr.String())
		}
	})

	t.Run("flag", func(t *testing.T) {
		_, stderr, code := run(t, factory, "list", "--config", t.TempDir(), "--base-url", "::bad")

		if code != exitcode.ConfigError {
			t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
		}
		if !strings.HasPrefix(stderr, "error: config error: invalid base_url: ") {
			t.Errorf("unexpected stderr %q", stderr)
		}
	})

	if factoryCalled {
		t.Error("expected no backend to be built for an invalid base_url")
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("bad base url")
	}

	_, stderr, code := run(t, factory, "list", "--config", t.TempDir())

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: bad base url\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_NoFactory(t *testing.T) {
	_, stderr, code := run(t, nil, "owners", "--config", t.TempDir())

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: no backend configured\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogging(t *testing.T) {
	_, stderr, code := run(t, nil, "version", "--config", t.TempDir(), "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "dispatching") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
	if !strings.Contains(stderr, `"configFileFound"=false`) {
		t.Errorf("expected config file lookup in debug log, got %q", stderr)
	}
}

func TestDispatcher_BaseURLOverride(t *testing.T) {
	var got string
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		got = cfg.BaseURL
		return testutil.NewFakeService(), nil
	}

	_, _, code := run(t, factory, "list", "--config", t.TempDir(), "--quiet", "--base-url", "http://localhost:9999")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got != "http://localhost:9999" {
		t.Errorf("expected base url override, got %q", got)
	}
}

func placeholderFactory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	return placeholder.New(ctx, cfg)
}

func TestDispatcher_EndToEnd(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddTask(service.Task{OwnerID: "1", ID: "1", Title: "delectus aut autem"})
	api.AddTask(service.Task{OwnerID: "1", ID: "2", Title: "quis ut nam facilis", Completed: true})
	api.AddOwner(service.Owner{ID: "1", Name: "Leanne Graham"})

	dir := t.TempDir()

	stdout, stderr, code := run(t, placeholderFactory, "list", "--config", dir, "--base-url", api.URL())
	if code != exitcode.Success {
		t.Fatalf("list: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "[x]    2  quis ut nam facilis  by Leanne Graham\n[ ]    1  delectus aut autem  by Leanne Graham\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	stdout, stderr, code = run(t, placeholderFactory, "rm", "--config", dir, "--base-url", api.URL(), "2")
	if code != exitcode.Success {
		t.Fatalf("rm: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	var deleted bool
	for _, req := range api.Requests() {
		if req.Method == http.MethodDelete && req.Path == "/todos/2" {
			deleted = true
		}
	}
	if !deleted {
		t.Error("expected DELETE /todos/2")
	}
}

func TestDispatcher_EndToEndServerError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddTask(service.Task{OwnerID: "1", ID: "1", Title: "a"})
	api.Fail(http.MethodPatch, "todos", http.StatusInternalServerError)

	_, stderr, code := run(t, placeholderFactory, "done", "--config", t.TempDir(), "--base-url", api.URL(), "1")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	expected := "error: update task 1: failed to connect with the server, please try later (HTTP 500)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}
