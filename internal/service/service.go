// Package service defines the backend-agnostic interface for remote task
// operations.
package service

import "context"

// Service is the remote side of the sync. All Google Tasks API calls go
// through this interface; the engine and commands never import the Google
// SDK directly.
//
// Implementations must surface an expired or revoked token as a
// syncerr.KindAuthExpired error, distinct from transient network failure,
// so the caller can instruct the user to re-authenticate instead of
// retrying.
type Service interface {
	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ListTasks returns every task in a list, including completed and
	// hidden ones. Each returned task has ListID set to listID.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a task and returns it with the service-assigned ID.
	CreateTask(ctx context.Context, listID, title string, done bool) (Task, error)

	// UpdateTask rewrites a task's title and completion status.
	UpdateTask(ctx context.Context, listID, taskID, title string, done bool) error

	// DeleteTask deletes a task. Deleting a task that no longer exists is
	// not an error, so an interrupted push can be re-run safely.
	DeleteTask(ctx context.Context, listID, taskID string) error
}
