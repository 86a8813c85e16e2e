// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"waynotes/internal/service"
	"waynotes/internal/syncerr"
)

// TaskCall records one mutating call made against FakeTasks.
type TaskCall struct {
	ListID string
	TaskID string
	Title  string
	Done   bool
}

// FakeTasks is an in-memory implementation of service.Service for testing.
// Mutating calls are recorded so tests can assert exactly what the engine
// asked the remote side to do.
type FakeTasks struct {
	mu     sync.Mutex
	lists  []service.TaskList
	tasks  map[string][]service.Task
	nextID int

	// Now, when set, stamps Updated/Completed on created and updated
	// tasks. Zero means time.Now().
	Now time.Time

	// Error injection
	ListListsErr  error
	ListTasksErr  map[string]error // listID -> error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// Recorded mutating calls
	Created []TaskCall
	Updated []TaskCall
	Deleted []TaskCall
}

// NewFakeTasks creates an empty fake with no lists.
func NewFakeTasks() *FakeTasks {
	return &FakeTasks{
		tasks:        make(map[string][]service.Task),
		ListTasksErr: make(map[string]error),
	}
}

// AddList adds a task list.
func (f *FakeTasks) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask seeds a task with an explicit updated timestamp.
func (f *FakeTasks) AddTask(listID, taskID, title string, done bool, updated time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:      taskID,
		ListID:  listID,
		Title:   title,
		Status:  service.StatusNeedsAction,
		Updated: updated,
	}
	if done {
		t.Status = service.StatusCompleted
		completed := updated
		t.Completed = &completed
	}
	f.tasks[listID] = append(f.tasks[listID], t)
}

// RemoveTask simulates a server-side deletion.
func (f *FakeTasks) RemoveTask(listID, taskID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := f.tasks[listID]
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
			return
		}
	}
}

// Task returns the current state of a task, if it exists.
func (f *FakeTasks) Task(listID, taskID string) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks[listID] {
		if t.ID == taskID {
			return t, true
		}
	}
	return service.Task{}, false
}

// TaskCount returns the number of tasks across all lists.
func (f *FakeTasks) TaskCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, tasks := range f.tasks {
		total += len(tasks)
	}
	return total
}

func (f *FakeTasks) stamp() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

// ListLists implements service.Service.
func (f *FakeTasks) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.TaskList, len(f.lists))
	copy(out, f.lists)
	return out, nil
}

// ListTasks implements service.Service.
func (f *FakeTasks) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if err := f.ListTasksErr[listID]; err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[listID]; !ok {
		return nil, syncerr.Newf(syncerr.KindRemoteAPI, "list tasks", "no such list: %s", listID)
	}
	out := make([]service.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeTasks) CreateTask(ctx context.Context, listID, title string, done bool) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, syncerr.Newf(syncerr.KindRemoteAPI, "create task", "no such list: %s", listID)
	}

	f.nextID++
	now := f.stamp()
	t := service.Task{
		ID:      fmt.Sprintf("t%d", f.nextID),
		ListID:  listID,
		Title:   title,
		Status:  service.StatusNeedsAction,
		Updated: now,
	}
	if done {
		t.Status = service.StatusCompleted
		completed := now
		t.Completed = &completed
	}
	f.tasks[listID] = append(f.tasks[listID], t)
	f.Created = append(f.Created, TaskCall{ListID: listID, TaskID: t.ID, Title: title, Done: done})
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeTasks) UpdateTask(ctx context.Context, listID, taskID, title string, done bool) error {
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := f.tasks[listID]
	for i, t := range tasks {
		if t.ID == taskID {
			now := f.stamp()
			tasks[i].Title = title
			tasks[i].Updated = now
			if done {
				tasks[i].Status = service.StatusCompleted
				completed := now
				tasks[i].Completed = &completed
			} else {
				tasks[i].Status = service.StatusNeedsAction
				tasks[i].Completed = nil
			}
			f.Updated = append(f.Updated, TaskCall{ListID: listID, TaskID: taskID, Title: title, Done: done})
			return nil
		}
	}
	return syncerr.Newf(syncerr.KindRemoteAPI, "update task", "no such task: %s", taskID)
}

// DeleteTask implements service.Service. Like the real backend, deleting a
// missing task succeeds.
func (f *FakeTasks) DeleteTask(ctx context.Context, listID, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := f.tasks[listID]
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
			break
		}
	}
	f.Deleted = append(f.Deleted, TaskCall{ListID: listID, TaskID: taskID})
	return nil
}
