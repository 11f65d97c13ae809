// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/storage"
)

// StorageFactory creates the task storage from config.
// Used to inject the backend during dispatch.
type StorageFactory func(cfg *config.Config) (storage.Storage, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StorageFactory
}

// NewDispatcher creates a new dispatcher with the given registry and storage factory.
func NewDispatcher(registry *commands.Registry, factory StorageFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	if cmdName == "-h" || cmdName == "--help" {
		return d.dispatch(ctx, "help", nil, out, errOut)
	}

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		return unknownCommand(errOut, cmdName)
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		return unknownCommand(errOut, cmdName)
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func unknownCommand(errOut io.Writer, name string) int {
	fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
	fmt.Fprint(errOut, commands.HelpText)
	return exitcode.UsageError
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var tasksFile string
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&tasksFile, "file", "", "")
	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	parsed := protectNegatives(fs, args)
	if err := fs.Parse(parsed); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(out, commands.HelpText)
			return exitcode.Success
		}
		return commands.ReportUsage(errOut, cmd, flagError(err))
	}

	positionalArgs := fs.Args()

	// Flag parsing stops at the first positional argument. A known flag
	// after it would otherwise be taken as part of a title.
	if !endedWithTerminator(parsed, positionalArgs) {
		if name, ok := misplacedFlag(fs, positionalArgs); ok {
			return commands.ReportUsage(errOut, cmd, fmt.Errorf("flags must come before arguments: %s", name))
		}
	}

	// Usage errors are reported before any storage access.
	if err := cmd.ValidateArgs(positionalArgs); err != nil {
		return commands.ReportUsage(errOut, cmd, err)
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UsageError
	}
	// help and version never read config.toml, so a broken one cannot fail them.
	if cmd.NeedsStorage() {
		if err := cfg.LoadFile(); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UsageError
		}
	}
	if tasksFile != "" {
		path, err := config.ExpandPath(tasksFile)
		if err != nil {
			fmt.Fprintf(errOut, "error: --file: %s\n", err)
			return exitcode.UsageError
		}
		cfg.TasksPath = path
	}
	if quiet {
		cfg.Quiet = true
	}
	cfg.Debug = debug

	logger := logging.New(errOut, cfg.Debug)
	ctx = logging.WithLogger(ctx, logger)
	logger.Debug("dispatch", "command", cmd.Name(), "config", cfg.Dir, "tasks", cfg.TasksPath)

	var store storage.Storage
	if cmd.NeedsStorage() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: storage error: no storage configured")
			return exitcode.StorageError
		}
		store, err = d.factory(cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %s\n", err)
			return exitcode.StorageError
		}
	}

	return cmd.Run(ctx, cfg, store, positionalArgs, out, errOut)
}

// flagError rewrites flag package errors into CLI messages.
func flagError(err error) error {
	errStr := err.Error()

	if name, ok := strings.CutPrefix(errStr, "flag provided but not defined: "); ok {
		return fmt.Errorf("unknown flag: %s", name)
	}
	if name, ok := strings.CutPrefix(errStr, "flag needs an argument: "); ok {
		return fmt.Errorf("flag needs an argument: %s", name)
	}
	return err
}

// protectNegatives inserts "--" before the first negative integer that flag
// parsing would reach, so "done -1" passes -1 through as an index.
func protectNegatives(fs *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || a == "-" || !strings.HasPrefix(a, "-") {
			return args
		}
		if _, err := strconv.Atoi(a); err == nil {
			protected := make([]string, 0, len(args)+1)
			protected = append(protected, args[:i]...)
			protected = append(protected, "--")
			return append(protected, args[i:]...)
		}
		if takesValue(fs, a) {
			i++
		}
	}
	return args
}

// takesValue reports whether a is a defined non-boolean flag given without
// an inline "=value", so the next argument is its value.
func takesValue(fs *flag.FlagSet, a string) bool {
	name := strings.TrimLeft(a, "-")
	if strings.Contains(name, "=") {
		return false
	}
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
		return false
	}
	return true
}

// endedWithTerminator reports whether flag parsing of parsed stopped at an
// explicit "--", after which every word is literal.
func endedWithTerminator(parsed, rest []string) bool {
	consumed := len(parsed) - len(rest)
	return consumed > 0 && parsed[consumed-1] == "--"
}

// misplacedFlag returns the first argument in args that names a defined flag.
func misplacedFlag(fs *flag.FlagSet, args []string) (string, bool) {
	for _, a := range args {
		if a == "-" || a == "--" || !strings.HasPrefix(a, "-") {
			continue
		}
		name := strings.TrimPrefix(strings.TrimPrefix(a, "-"), "-")
		name, _, _ = strings.Cut(name, "=")
		if fs.Lookup(name) != nil {
			return a, true
		}
	}
	return "", false
}
