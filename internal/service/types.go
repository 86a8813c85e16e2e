// Package service defines the backend-agnostic interface for remote task
// operations.
package service

import "time"

// Status values used by the remote task service.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a single remote task.
type Task struct {
	ID        string
	ListID    string
	Title     string
	Status    string // StatusNeedsAction or StatusCompleted
	Completed *time.Time
	Updated   time.Time
}

// Done reports whether the task is completed.
func (t Task) Done() bool { return t.Status == StatusCompleted }

// TaskList represents a remote task list.
type TaskList struct {
	ID    string
	Title string
}
