// Package storage defines the persistence contract for the task list.
package storage

import (
	"context"

	"todo/internal/tasklist"
)

// Storage loads and saves the complete task list.
// Commands never touch the filesystem directly.
type Storage interface {
	// Load returns the persisted task list.
	// A missing store or malformed content yields an empty list and a nil
	// error. Only genuine I/O failures are returned.
	Load(ctx context.Context) (tasklist.List, error)

	// Save replaces the persisted task list with tasks.
	Save(ctx context.Context, tasks tasklist.List) error
}
