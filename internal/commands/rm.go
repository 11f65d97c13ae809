package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/storage"
	"todo/internal/tasklist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return nil }
func (c *RmCmd) Synopsis() string   { return "Remove a task" }
func (c *RmCmd) Usage() string      { return "todo rm <index>" }
func (c *RmCmd) NeedsStorage() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) ValidateArgs(args []string) error {
	_, err := ParseIndex(args)
	return err
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, store storage.Storage, args []string, out, errOut io.Writer) int {
	idx, err := ParseIndex(args)
	if err != nil {
		return ReportUsage(errOut, c, err)
	}

	tasks, err := store.Load(ctx)
	if err != nil {
		return storageFailure(ctx, errOut, err)
	}

	f := output.New(out)

	task, err := tasks.Remove(idx)
	if errors.Is(err, tasklist.ErrInvalidIndex) {
		f.InvalidIndex()
		return exitcode.Success
	}

	if err := store.Save(ctx, tasks); err != nil {
		return storageFailure(ctx, errOut, err)
	}

	if !cfg.Quiet {
		f.Removed(task)
	}
	return exitcode.Success
}
