package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/backend/jsonfile"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/storage"
	"todo/internal/testutil"
)

// testFactory creates a storage factory that returns the given FakeStorage.
func testFactory(store *testutil.FakeStorage) cli.StorageFactory {
	return func(cfg *config.Config) (storage.Storage, error) {
		return store, nil
	}
}

// fileFactory wires the real JSON file backend at cfg.TasksPath.
func fileFactory(cfg *config.Config) (storage.Storage, error) {
	return jsonfile.New(cfg.TasksPath), nil
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	store := testutil.NewFakeStorage("Buy milk")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	stdout, stderr, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "1. [ ] Buy milk\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStorage()))

	stdout, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UsageError {
		t.Errorf("expected exit code %d, got %d", exitcode.UsageError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: unknown command: unknowncmd\n" + commands.HelpText
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStorage()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UsageError {
		t.Errorf("expected exit code %d, got %d", exitcode.UsageError, code)
	}
	if !strings.HasPrefix(stderr, "error: unknown command: --quiet\n") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStorage()))

	for _, args := range [][]string{{"help"}, {"-h"}, {"--help"}, {"add", "-h"}} {
		stdout, stderr, code := run(t, dispatcher, args...)

		if code != exitcode.Success {
			t.Errorf("%q: expected exit code %d, got %d", args, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("%q: expected no stderr, got %q", args, stderr)
		}
		if stdout != commands.HelpText {
			t.Errorf("%q: expected help output, got %q", args, stdout)
		}
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStorage()))

	_, stderr, code := run(t, dispatcher, "list", "--unknown")

	if code != exitcode.UsageError {
		t.Errorf("expected exit code %d, got %d", exitcode.UsageError, code)
	}
	expected := "error: unknown flag: -unknown\nusage: todo list\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_UsageErrorBeforeStorage(t *testing.T) {
	factoryCalled := false
	factory := func(cfg *config.Config) (storage.Storage, error) {
		factoryCalled = true
		return testutil.NewFakeStorage(), nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	tests := [][]string{
		{"add"},
		{"done"},
		{"done", "x"},
		{"rm", "1", "2"},
		{"list", "extra"},
	}
	for _, args := range tests {
		_, stderr, code := run(t, dispatcher, args...)
		if code != exitcode.UsageError {
			t.Errorf("%q: expected exit code %d, got %d", args, exitcode.UsageError, code)
		}
		if !strings.HasPrefix(stderr, "error: ") || !strings.Contains(stderr, "usage: todo ") {
			t.Errorf("%q: unexpected stderr %q", args, stderr)
		}
	}
	if factoryCalled {
		t.Error("storage must not be opened on usage errors")
	}
}

func TestDispatcher_NegativeIndexIsWarning(t *testing.T) {
	store := testutil.NewFakeStorage("Buy milk")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	for _, args := range [][]string{{"done", "-1"}, {"rm", "--quiet", "-3"}} {
		stdout, stderr, code := run(t, dispatcher, args...)

		if code != exitcode.Success {
			t.Errorf("%q: expected exit code %d, got %d", args, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("%q: expected no stderr, got %q", args, stderr)
		}
		if stdout != "Invalid index\n" {
			t.Errorf("%q: expected warning, got %q", args, stdout)
		}
	}
	if store.Saves != 0 {
		t.Errorf("expected no saves, got %d", store.Saves)
	}
}

func TestDispatcher_OverflowingIndexIsWarning(t *testing.T) {
	store := testutil.NewFakeStorage("Buy milk")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	for _, args := range [][]string{
		{"done", "99999999999999999999"},
		{"rm", "-99999999999999999999"},
	} {
		stdout, stderr, code := run(t, dispatcher, args...)

		if code != exitcode.Success {
			t.Errorf("%q: expected exit code %d, got %d", args, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("%q: expected no stderr, got %q", args, stderr)
		}
		if stdout != "Invalid index\n" {
			t.Errorf("%q: expected warning, got %q", args, stdout)
		}
	}
	if store.Saves != 0 {
		t.Errorf("expected no saves, got %d", store.Saves)
	}
}

func TestDispatcher_FlagAfterTitle(t *testing.T) {
	store := testutil.NewFakeStorage()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	tests := [][]string{
		{"add", "Buy", "milk", "--quiet"},
		{"add", "Buy", "milk", "-debug"},
		{"add", "Buy", "--file=other.json"},
		{"done", "1", "--quiet"},
	}
	for _, args := range tests {
		_, stderr, code := run(t, dispatcher, args...)
		if code != exitcode.UsageError {
			t.Errorf("%q: expected exit code %d, got %d", args, exitcode.UsageError, code)
		}
		if !strings.HasPrefix(stderr, "error: flags must come before arguments: ") {
			t.Errorf("%q: unexpected stderr %q", args, stderr)
		}
	}
	if store.Saves != 0 {
		t.Errorf("expected no saves, got %d", store.Saves)
	}
}

func TestDispatcher_TerminatorKeepsDashWords(t *testing.T) {
	store := testutil.NewFakeStorage()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))

	stdout, stderr, code := run(t, dispatcher, "add", "--quiet", "--", "Buy", "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "" {
		t.Errorf("expected quiet output, got %q", stdout)
	}
	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy --quiet" {
		t.Errorf("expected single task 'Buy --quiet', got %+v", tasks)
	}
}

func TestDispatcher_MalformedConfigOnlyAffectsStorageCommands(t *testing.T) {
	configDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(configDir, config.ConfigFile), []byte("tasks_file = [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStorage()))

	for _, args := range [][]string{
		{"help", "--config", configDir},
		{"version", "--config", configDir},
	} {
		stdout, stderr, code := run(t, dispatcher, args...)
		if code != exitcode.Success {
			t.Errorf("%q: expected exit code %d, got %d (stderr %q)", args, exitcode.Success, code, stderr)
		}
		if stdout == "" {
			t.Errorf("%q: expected output", args)
		}
	}

	_, stderr, code := run(t, dispatcher, "list", "--config", configDir)
	if code != exitcode.UsageError {
		t.Errorf("list: expected exit code %d, got %d", exitcode.UsageError, code)
	}
	if !strings.Contains(stderr, "parse config") {
		t.Errorf("list: expected config parse error, got %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(cfg *config.Config) (storage.Storage, error) {
		return nil, errors.New("no home")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: storage error: no home\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fileFactory)

	stdout, stderr, code := run(t, dispatcher, "list", "--debug", "--file", path)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "No tasks.\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "tasks file not found") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestDispatcher_ConfigFileTasksPath(t *testing.T) {
	configDir := t.TempDir()
	tasksPath := filepath.Join(t.TempDir(), "from-config.json")
	content := "tasks_file = \"" + filepath.ToSlash(tasksPath) + "\"\n"
	if err := os.WriteFile(filepath.Join(configDir, config.ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fileFactory)

	_, stderr, code := run(t, dispatcher, "add", "--config", configDir, "Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if _, err := os.Stat(tasksPath); err != nil {
		t.Errorf("expected tasks file at configured path: %v", err)
	}
}

// TestEndToEnd drives the documented scenario through the real file backend.
func TestEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fileFactory)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"list"}, "No tasks.\n"},
		{[]string{"add", "Buy milk"}, "Added: Buy milk\n"},
		{[]string{"add", "Walk", "dog"}, "Added: Walk dog\n"},
		{[]string{"list"}, "1. [ ] Buy milk\n2. [ ] Walk dog\n"},
		{[]string{"done", "1"}, "Completed: Buy milk\n"},
		{[]string{"list"}, "1. [✓] Buy milk\n2. [ ] Walk dog\n"},
		{[]string{"rm", "1"}, "Removed: Buy milk\n"},
		{[]string{"list"}, "1. [ ] Walk dog\n"},
	}

	for i, step := range steps {
		args := append([]string{step.args[0], "--file", path}, step.args[1:]...)
		stdout, stderr, code := run(t, dispatcher, args...)

		if code != exitcode.Success {
			t.Fatalf("step %d %q: exit code %d, stderr %q", i, step.args, code, stderr)
		}
		if stdout != step.want {
			t.Errorf("step %d %q: expected %q, got %q", i, step.args, step.want, stdout)
		}

		if i == 0 {
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Errorf("list on fresh storage must not create the file")
			}
		}
	}
}

func TestEndToEnd_InvalidIndexLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fileFactory)

	if _, _, code := run(t, dispatcher, "add", "--file", path, "Buy milk"); code != exitcode.Success {
		t.Fatalf("add failed with %d", code)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{{"done", "--file", path, "5"}, {"rm", "--file", path, "0"}} {
		stdout, _, code := run(t, dispatcher, args...)
		if code != exitcode.Success || stdout != "Invalid index\n" {
			t.Errorf("%q: got code %d, stdout %q", args, code, stdout)
		}
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("file changed:\nbefore %q\nafter  %q", before, after)
	}
}

func TestEndToEnd_CorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fileFactory)

	stdout, stderr, code := run(t, dispatcher, "list", "--file", path)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("corruption must not be surfaced, got %q", stderr)
	}
	if stdout != "No tasks.\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}
