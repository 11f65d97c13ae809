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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task as done" }
func (c *DoneCmd) Usage() string      { return "todo done <index>" }
func (c *DoneCmd) NeedsStorage() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) ValidateArgs(args []string) error {
	_, err := ParseIndex(args)
	return err
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, store storage.Storage, args []string, out, errOut io.Writer) int {
	idx, err := ParseIndex(args)
	if err != nil {
		return ReportUsage(errOut, c, err)
	}

	tasks, err := store.Load(ctx)
	if err != nil {
		return storageFailure(ctx, errOut, err)
	}

	f := output.New(out)

	// Out of range is a warning: nothing is saved and the exit code stays 0.
	task, err := tasks.Complete(idx)
	if errors.Is(err, tasklist.ErrInvalidIndex) {
		f.InvalidIndex()
		return exitcode.Success
	}

	if err := store.Save(ctx, tasks); err != nil {
		return storageFailure(ctx, errOut, err)
	}

	if !cfg.Quiet {
		f.Completed(task)
	}
	return exitcode.Success
}
