// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/tasklist"
)

const (
	// NoTasks is printed by list when the sequence is empty.
	NoTasks = "No tasks."

	// InvalidIndex is printed when done or rm get an out-of-range index.
	InvalidIndex = "Invalid index"

	// DoneMarker and OpenMarker fill the status box of a task line.
	DoneMarker = "✓"
	OpenMarker = " "
)

var (
	successColor = lipgloss.Color("65")
	mutedColor   = lipgloss.Color("244")
)

// Formatter writes task output to w. Styling is applied only when w is a
// color-capable terminal, so pipes and buffers receive plain text.
type Formatter struct {
	w         io.Writer
	doneMark  lipgloss.Style
	doneTitle lipgloss.Style
}

// New creates a Formatter bound to w.
func New(w io.Writer) *Formatter {
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		w:         w,
		doneMark:  r.NewStyle().Foreground(successColor).Bold(true),
		doneTitle: r.NewStyle().Foreground(mutedColor),
	}
}

// Task formats a list line.
// Format: "{N}. [{MARK}] {TITLE}\n"
func (f *Formatter) Task(num int, task tasklist.Task) {
	mark, title := OpenMarker, task.Title
	if task.Done {
		mark = f.doneMark.Render(DoneMarker)
		title = f.doneTitle.Render(title)
	}
	fmt.Fprintf(f.w, "%d. [%s] %s\n", num, mark, title)
}

// List formats the whole task list, or NoTasks when it is empty.
func (f *Formatter) List(tasks tasklist.List) {
	if tasks.Len() == 0 {
		fmt.Fprintln(f.w, NoTasks)
		return
	}
	for i, task := range tasks {
		f.Task(i+1, task)
	}
}

// Added prints the confirmation for add.
func (f *Formatter) Added(task tasklist.Task) {
	fmt.Fprintln(f.w, "Added:", task.Title)
}

// Completed prints the confirmation for done.
func (f *Formatter) Completed(task tasklist.Task) {
	fmt.Fprintln(f.w, "Completed:", task.Title)
}

// Removed prints the confirmation for rm.
func (f *Formatter) Removed(task tasklist.Task) {
	fmt.Fprintln(f.w, "Removed:", task.Title)
}

// InvalidIndex prints the out-of-range warning.
func (f *Formatter) InvalidIndex() {
	fmt.Fprintln(f.w, InvalidIndex)
}
