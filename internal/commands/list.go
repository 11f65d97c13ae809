package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/storage"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return nil }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todo list" }
func (c *ListCmd) NeedsStorage() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) ValidateArgs(args []string) error {
	return noArgs(args)
}

// Run prints the list. It never saves, so listing a fresh location does not
// create the tasks file.
func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store storage.Storage, args []string, out, errOut io.Writer) int {
	tasks, err := store.Load(ctx)
	if err != nil {
		return storageFailure(ctx, errOut, err)
	}

	output.New(out).List(tasks)
	return exitcode.Success
}
