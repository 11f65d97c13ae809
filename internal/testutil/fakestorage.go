// Package testutil provides testing utilities.
package testutil

import (
	"context"

	"todo/internal/tasklist"
)

// FakeStorage is an in-memory storage.Storage for command tests.
type FakeStorage struct {
	tasks tasklist.List

	// Saves counts successful Save calls.
	Saves int

	// Error injection for testing
	LoadErr error
	SaveErr error
}

// NewFakeStorage creates a FakeStorage holding the given titles, all open.
func NewFakeStorage(titles ...string) *FakeStorage {
	f := &FakeStorage{tasks: tasklist.List{}}
	for _, title := range titles {
		f.tasks = append(f.tasks, tasklist.Task{Title: title})
	}
	return f
}

// SetTasks replaces the stored list.
func (f *FakeStorage) SetTasks(tasks tasklist.List) {
	f.tasks = tasks.Clone()
}

// Tasks returns a copy of the stored list.
func (f *FakeStorage) Tasks() tasklist.List {
	return f.tasks.Clone()
}

// Load implements storage.Storage.
func (f *FakeStorage) Load(ctx context.Context) (tasklist.List, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return f.tasks.Clone(), nil
}

// Save implements storage.Storage.
func (f *FakeStorage) Save(ctx context.Context, tasks tasklist.List) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.tasks = tasks.Clone()
	f.Saves++
	return nil
}
