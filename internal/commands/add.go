package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/storage"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return nil }
func (c *AddCmd) Synopsis() string   { return "Add a task" }
func (c *AddCmd) Usage() string      { return "todo add <title...>" }
func (c *AddCmd) NeedsStorage() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) ValidateArgs(args []string) error {
	if strings.TrimSpace(title(args)) == "" {
		return ErrTitleRequired
	}
	return nil
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store storage.Storage, args []string, out, errOut io.Writer) int {
	tasks, err := store.Load(ctx)
	if err != nil {
		return storageFailure(ctx, errOut, err)
	}

	task, err := tasks.Add(title(args))
	if err != nil {
		return ReportUsage(errOut, c, ErrTitleRequired)
	}

	if err := store.Save(ctx, tasks); err != nil {
		return storageFailure(ctx, errOut, err)
	}

	if !cfg.Quiet {
		output.New(out).Added(task)
	}
	return exitcode.Success
}

// title joins the title words with single spaces.
func title(args []string) string {
	return strings.Join(args, " ")
}
