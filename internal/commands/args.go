package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"todo/internal/exitcode"
	"todo/internal/logging"
)

var (
	// ErrIndexRequired indicates no task index was provided.
	ErrIndexRequired = errors.New("index required")

	// ErrTitleRequired indicates add was called without title words.
	ErrTitleRequired = errors.New("title required")
)

// ParseIndex parses the single task index argument of done and rm.
// Any integer is accepted here, including zero and negatives; range
// checking happens against the loaded list so that an out-of-range index
// is a warning rather than a usage error. Integers too large for int
// parse as 0, which no list accepts.
func ParseIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrIndexRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	n, err := strconv.Atoi(args[0])
	if errors.Is(err, strconv.ErrRange) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("invalid index: %s", args[0])
	}
	return n, nil
}

// noArgs rejects any positional argument.
func noArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	return nil
}

// ReportUsage prints a usage error followed by the command's usage line.
func ReportUsage(errOut io.Writer, cmd Command, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	fmt.Fprintf(errOut, "usage: %s\n", cmd.Usage())
	return exitcode.UsageError
}

// storageFailure reports a load or save error.
func storageFailure(ctx context.Context, errOut io.Writer, err error) int {
	logging.FromContext(ctx).Debug("storage failure", "err", err)
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}
