// Package notes implements the local note store.
package notes

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a note id does not exist.
var ErrNotFound = errors.New("note not found")

// Note is a single local task note.
type Note struct {
	ID        int64
	Text      string
	Done      bool
	Created   time.Time
	Completed *time.Time
}

// Store is the local note store consumed by the sync engine and the note
// commands. Ids are locally unique and monotonically assigned; every call
// is durable before it returns.
type Store interface {
	// List returns all notes ordered by id.
	List(ctx context.Context) ([]Note, error)

	// Get returns the note with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (Note, error)

	// Create stores a new undone note and returns it with its assigned id.
	Create(ctx context.Context, text string) (Note, error)

	// Update rewrites a note's text, done flag and completed timestamp.
	// Returns ErrNotFound if the id does not exist.
	Update(ctx context.Context, id int64, text string, done bool, completed *time.Time) error

	// Delete removes a note. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	Close() error
}

// Undone filters a note list down to the notes that are not done,
// preserving order.
func Undone(all []Note) []Note {
	var out []Note
	for _, n := range all {
		if !n.Done {
			out = append(out, n)
		}
	}
	return out
}
