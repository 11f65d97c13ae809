package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/storage"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todo help" }
func (c *HelpCmd) NeedsStorage() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) ValidateArgs(args []string) error { return nil }

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store storage.Storage, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, HelpText)
	return exitcode.Success
}

// HelpText is printed by help and after an unknown command.
const HelpText = `Simple todo CLI

Usage:
  todo                         List tasks
  todo list [common flags]     List tasks
  todo add [common flags] <title...>
                               Add a task
  todo done [common flags] <index>
                               Mark task as done (index from list)
  todo rm [common flags] <index>
                               Remove a task
  todo help
  todo version

Common flags:
  --file <path>    Tasks file (default: tasks.json next to the executable)
  --config <dir>   Override config directory
  --quiet          Suppress confirmations
  --debug          Print debug logs to stderr

Flags go before the title or index. Use -- to start a title with a dash.
`
