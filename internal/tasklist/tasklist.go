// Package tasklist holds the task model and the index-addressed operations
// the commands perform on it.
package tasklist

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidIndex is returned when an index is outside 1..Len().
	ErrInvalidIndex = errors.New("invalid index")

	// ErrEmptyTitle is returned when a task is added without title text.
	ErrEmptyTitle = errors.New("title required")
)

// Task is a single task.
type Task struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// List is the ordered task sequence. Order is insertion order and defines
// the 1-based index shown to the user.
type List []Task

// Len returns the number of tasks.
func (l List) Len() int {
	return len(l)
}

// ValidIndex reports whether i addresses an existing task (1-based).
func (l List) ValidIndex(i int) bool {
	return i >= 1 && i <= len(l)
}

// At returns the task at the 1-based index i.
func (l List) At(i int) (Task, error) {
	if !l.ValidIndex(i) {
		return Task{}, ErrInvalidIndex
	}
	return l[i-1], nil
}

// Add appends a new open task. The title is stored verbatim.
func (l *List) Add(title string) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	t := Task{Title: title}
	*l = append(*l, t)
	return t, nil
}

// Complete marks the task at index i done and returns it.
func (l List) Complete(i int) (Task, error) {
	if !l.ValidIndex(i) {
		return Task{}, ErrInvalidIndex
	}
	l[i-1].Done = true
	return l[i-1], nil
}

// Remove deletes the task at index i and returns it.
// Tasks after i move down one position.
func (l *List) Remove(i int) (Task, error) {
	if !l.ValidIndex(i) {
		return Task{}, ErrInvalidIndex
	}
	s := *l
	t := s[i-1]
	*l = append(s[:i-1:i-1], s[i:]...)
	return t, nil
}

// Clone returns a copy that shares no backing array with l.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	c := make(List, len(l))
	copy(c, l)
	return c
}
