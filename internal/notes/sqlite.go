package notes

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"waynotes/internal/syncerr"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	text      TEXT NOT NULL,
	done      INTEGER NOT NULL DEFAULT 0,
	created   TEXT NOT NULL,
	completed TEXT
);`

// SQLiteStore implements Store on a SQLite database file. AUTOINCREMENT
// keeps id allocation monotonic even after deletes, and every statement
// commits before returning.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the note database at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, syncerr.New(syncerr.KindLocalStore, "open note store", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, syncerr.New(syncerr.KindLocalStore, "init note store", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// SetClock overrides the creation timestamp source (for testing).
func (s *SQLiteStore) SetClock(now func() time.Time) { s.now = now }

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// List returns all notes ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, done, created, completed FROM notes ORDER BY id`)
	if err != nil {
		return nil, syncerr.New(syncerr.KindLocalStore, "list notes", err)
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, syncerr.New(syncerr.KindLocalStore, "list notes", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, syncerr.New(syncerr.KindLocalStore, "list notes", err)
	}
	return out, nil
}

// Get returns the note with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, text, done, created, completed FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, syncerr.New(syncerr.KindLocalStore, "get note", err)
	}
	return n, nil
}

// Create stores a new undone note and returns it with its assigned id.
func (s *SQLiteStore) Create(ctx context.Context, text string) (Note, error) {
	created := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (text, done, created, completed) VALUES (?, 0, ?, NULL)`,
		text, formatTime(created))
	if err != nil {
		return Note{}, syncerr.New(syncerr.KindLocalStore, "create note", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Note{}, syncerr.New(syncerr.KindLocalStore, "create note", err)
	}
	return Note{ID: id, Text: text, Created: created}, nil
}

// Update rewrites a note's text, done flag and completed timestamp.
func (s *SQLiteStore) Update(ctx context.Context, id int64, text string, done bool, completed *time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET text = ?, done = ?, completed = ? WHERE id = ?`,
		text, boolToInt(done), formatTimePtr(completed), id)
	if err != nil {
		return syncerr.New(syncerr.KindLocalStore, "update note", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return syncerr.New(syncerr.KindLocalStore, "update note", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a note. Deleting a missing id is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return syncerr.New(syncerr.KindLocalStore, "delete note", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var (
		n         Note
		done      int
		created   string
		completed sql.NullString
	)
	if err := row.Scan(&n.ID, &n.Text, &done, &created, &completed); err != nil {
		return Note{}, err
	}
	n.Done = done != 0
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		n.Created = ts
	}
	if completed.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, completed.String); err == nil {
			n.Completed = &ts
		}
	}
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
