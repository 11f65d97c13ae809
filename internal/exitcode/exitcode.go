// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion. Out-of-range indexes on
	// done and rm are warnings and still exit with Success.
	Success = 0

	// StorageError indicates the tasks file could not be read or written.
	StorageError = 1

	// UsageError indicates a bad invocation (unknown command, missing or
	// malformed argument, unknown flag).
	UsageError = 2
)
