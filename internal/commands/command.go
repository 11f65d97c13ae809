// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/storage"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStorage returns true if the command reads or writes tasks.
	// help and version return false.
	NeedsStorage() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// ValidateArgs checks positional arguments before any storage access.
	// A non-nil error is reported as a usage error.
	ValidateArgs(args []string) error

	// Run executes the command.
	// cfg is always provided.
	// store is nil if NeedsStorage() returns false.
	// args has already passed ValidateArgs.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, store storage.Storage, args []string, out, errOut io.Writer) int
}
