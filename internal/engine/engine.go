// Package engine implements the synchronization engine: it maps local
// notes to remote tasks, decides what to create, update and delete on each
// side, and persists the mapping across runs so repeated syncs are
// idempotent.
//
// Conflict policy, by name: server wins on pull. Pull is authoritative for
// existence and for field values whose remote timestamp is newer; push
// uploads local edits and creations and forwards local deletions, but never
// deletes a remote task whose local note still exists. Known limitation:
// alternating local and remote edits to the same field between two syncs
// can oscillate, because push overwrites concurrent remote edits until the
// next pull.
package engine

import (
	"context"
	"io"
	"log/slog"
	"time"

	"waynotes/internal/notes"
	"waynotes/internal/service"
	"waynotes/internal/syncstate"
)

// Summary counts the mutations a sync operation performed on each side.
type Summary struct {
	LocalCreated  int
	LocalUpdated  int
	LocalDeleted  int
	RemoteCreated int
	RemoteUpdated int
	RemoteDeleted int
}

func (s *Summary) add(other Summary) {
	s.LocalCreated += other.LocalCreated
	s.LocalUpdated += other.LocalUpdated
	s.LocalDeleted += other.LocalDeleted
	s.RemoteCreated += other.RemoteCreated
	s.RemoteUpdated += other.RemoteUpdated
	s.RemoteDeleted += other.RemoteDeleted
}

// Engine orchestrates pull, push and setup. Each operation takes the
// advisory lock, loads the state fresh, works on the in-memory copy and
// persists it atomically at the end; any failure discards the copy and
// leaves the previously persisted state untouched.
type Engine struct {
	remote service.Service
	notes  notes.Store
	states syncstate.Store
	log    *slog.Logger
	now    func() time.Time
}

// New creates an engine over the given remote service, note store and
// state store. A nil logger discards debug output.
func New(remote service.Service, store notes.Store, states syncstate.Store, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		remote: remote,
		notes:  store,
		states: states,
		log:    log,
		now:    time.Now,
	}
}

// SetClock overrides the timestamp source (for testing).
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Pull mirrors the union of tasks across all remote task lists onto the
// local note store. The remote service wins on existence: tasks deleted
// server-side delete their local counterpart.
func (e *Engine) Pull(ctx context.Context) (Summary, error) {
	unlock, err := e.states.Lock()
	if err != nil {
		return Summary{}, err
	}
	defer unlock()

	st, err := e.states.Load()
	if err != nil {
		return Summary{}, err
	}
	return e.pull(ctx, st)
}

// Push propagates local note changes to the remote service. It never
// deletes a remote task except for notes the user deleted locally.
func (e *Engine) Push(ctx context.Context) (Summary, error) {
	unlock, err := e.states.Lock()
	if err != nil {
		return Summary{}, err
	}
	defer unlock()

	st, err := e.states.Load()
	if err != nil {
		return Summary{}, err
	}
	return e.push(ctx, st)
}

// Setup bootstraps a fresh sync state from whatever exists remotely:
// it discards any previous mapping file and pulls. Local notes that
// existed before setup stay unmapped until explicitly pushed.
func (e *Engine) Setup(ctx context.Context) (Summary, error) {
	unlock, err := e.states.Lock()
	if err != nil {
		return Summary{}, err
	}
	defer unlock()

	return e.pull(ctx, syncstate.NewState())
}

// Sync runs push then pull, so the pull lands last and the server-wins
// rule settles existence and newer remote edits authoritatively.
func (e *Engine) Sync(ctx context.Context) (Summary, error) {
	sum, err := e.Push(ctx)
	if err != nil {
		return sum, err
	}
	pulled, err := e.Pull(ctx)
	sum.add(pulled)
	return sum, err
}

// Report is the read-only status of the sync state.
type Report struct {
	LastPullAt *time.Time
	LastPushAt *time.Time
	Mappings   int
	Lists      int
}

// ReadStatus loads the sync state and summarizes it. No network calls, no
// note store access, no lock.
func ReadStatus(states syncstate.Store) (Report, error) {
	st, err := states.Load()
	if err != nil {
		return Report{}, err
	}
	return Report{
		LastPullAt: st.LastPullAt,
		LastPushAt: st.LastPushAt,
		Mappings:   len(st.Mappings),
		Lists:      len(st.ListIDs()),
	}, nil
}
