// Package jsonfile implements storage.Storage on top of a single
// pretty-printed JSON file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"todo/internal/logging"
	"todo/internal/tasklist"
)

const (
	// FileMode is the permission of the written tasks file.
	FileMode = 0o644

	// DirMode is the permission used when creating the parent directory.
	DirMode = 0o755
)

// Store reads and writes the task list at a fixed path.
type Store struct {
	path string
}

// New returns a Store for the file at path. The file is not touched until
// Load or Save is called.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the tasks file path.
func (s *Store) Path() string {
	return s.path
}

// Load implements storage.Storage.
// A missing file, invalid JSON, or a document that does not match the task
// file schema all yield an empty list.
func (s *Store) Load(ctx context.Context) (tasklist.List, error) {
	logger := logging.FromContext(ctx)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("tasks file not found, starting empty", "path", s.path)
		return tasklist.List{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	tasks, err := Decode(data)
	if err != nil {
		logger.Debug("tasks file malformed, starting empty", "path", s.path, "err", err)
		return tasklist.List{}, nil
	}

	logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save implements storage.Storage.
// The file is replaced atomically, so readers never observe a half-written
// file.
func (s *Store) Save(ctx context.Context, tasks tasklist.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}

	if err := renameio.WriteFile(s.path, data, FileMode); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}

	logging.FromContext(ctx).Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// Encode serializes tasks as an indented JSON array with a trailing newline.
// Non-ASCII and HTML characters are written as-is.
func Encode(tasks tasklist.List) ([]byte, error) {
	if tasks == nil {
		tasks = tasklist.List{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses and validates a tasks file document.
// Only the exact keys "title" and "done" are read; any other key, including
// case variants of those two, is dropped.
func Decode(data []byte) (tasklist.List, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	// The schema guarantees an array of objects with a string title and an
	// optional boolean done.
	items := doc.([]interface{})
	tasks := make(tasklist.List, 0, len(items))
	for _, item := range items {
		obj := item.(map[string]interface{})
		task := tasklist.Task{Title: obj["title"].(string)}
		if done, ok := obj["done"].(bool); ok {
			task.Done = done
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
