package engine_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waynotes/internal/engine"
	"waynotes/internal/notes"
	"waynotes/internal/syncerr"
	"waynotes/internal/syncstate"
	"waynotes/internal/testutil"
)

var syncTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fixture wires a real sqlite note store and file-backed sync state in a
// temp dir to a fake remote, with a fixed engine clock.
type fixture struct {
	eng       *engine.Engine
	fake      *testutil.FakeTasks
	notes     *notes.SQLiteStore
	states    *syncstate.FileStore
	statePath string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	store, err := notes.Open(filepath.Join(dir, "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	statePath := filepath.Join(dir, "sync_state.json")
	states := syncstate.NewFileStore(statePath, filepath.Join(dir, "sync.lock"))

	fake := testutil.NewFakeTasks()
	fake.Now = syncTime
	eng := engine.New(fake, store, states, nil)
	eng.SetClock(func() time.Time { return syncTime })

	return &fixture{eng: eng, fake: fake, notes: store, states: states, statePath: statePath}
}

func (f *fixture) loadState(t *testing.T) *syncstate.State {
	t.Helper()
	st, err := f.states.Load()
	require.NoError(t, err)
	return st
}

func (f *fixture) listNotes(t *testing.T) []notes.Note {
	t.Helper()
	all, err := f.notes.List(context.Background())
	require.NoError(t, err)
	return all
}

func TestSetup_DiscardsOldStateAndPulls(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A local note that existed before setup, and stale persisted state.
	pre, err := f.notes.Create(ctx, "pre-existing local note")
	require.NoError(t, err)
	old := syncstate.NewState()
	old.Put(syncstate.Mapping{LocalID: 99, RemoteID: "ghost", ListID: "gone"})
	require.NoError(t, f.states.Save(old))

	f.fake.AddList("L", "My Tasks")
	f.fake.AddTask("L", "r1", "Buy milk", false, syncTime.Add(-time.Hour))

	sum, err := f.eng.Setup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.LocalCreated)

	st := f.loadState(t)
	require.Len(t, st.Mappings, 1)
	assert.Equal(t, "r1", st.Mappings[0].RemoteID)
	assert.Equal(t, "L", st.DefaultListID)

	// The pre-existing note stays, unmapped, until explicitly pushed.
	all := f.listNotes(t)
	require.Len(t, all, 2)
	assert.Equal(t, pre.ID, all[0].ID)
	_, mapped := st.ByLocal(pre.ID)
	assert.False(t, mapped)
}

func TestReadStatus(t *testing.T) {
	f := newFixture(t)

	report, err := engine.ReadStatus(f.states)
	require.NoError(t, err)
	assert.Nil(t, report.LastPullAt)
	assert.Nil(t, report.LastPushAt)
	assert.Zero(t, report.Mappings)
	assert.Zero(t, report.Lists)

	f.fake.AddList("L1", "My Tasks")
	f.fake.AddList("L2", "Work")
	f.fake.AddTask("L1", "r1", "one", false, syncTime.Add(-time.Hour))
	f.fake.AddTask("L2", "r2", "two", false, syncTime.Add(-time.Hour))

	_, err = f.eng.Pull(context.Background())
	require.NoError(t, err)

	report, err = engine.ReadStatus(f.states)
	require.NoError(t, err)
	require.NotNil(t, report.LastPullAt)
	assert.True(t, report.LastPullAt.Equal(syncTime))
	assert.Nil(t, report.LastPushAt)
	assert.Equal(t, 2, report.Mappings)
	assert.Equal(t, 2, report.Lists)
}

// failingStore delegates to the real store but fails Save on demand.
type failingStore struct {
	syncstate.Store
	failSave bool
}

func (f *failingStore) Save(st *syncstate.State) error {
	if f.failSave {
		return syncerr.New(syncerr.KindLocalStore, "save state", errors.New("injected write failure"))
	}
	return f.Store.Save(st)
}

func TestPersistenceAtomicity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.fake.AddList("L", "My Tasks")
	f.fake.AddTask("L", "r1", "Buy milk", false, syncTime.Add(-time.Hour))
	_, err := f.eng.Pull(ctx)
	require.NoError(t, err)

	before, err := os.ReadFile(f.statePath)
	require.NoError(t, err)

	// New remote task, but persistence is broken.
	f.fake.AddTask("L", "r2", "Buy eggs", false, syncTime.Add(-time.Hour))
	wrapped := &failingStore{Store: f.states, failSave: true}
	broken := engine.New(f.fake, f.notes, wrapped, nil)
	broken.SetClock(func() time.Time { return syncTime })

	_, err = broken.Pull(ctx)
	require.Error(t, err)
	assert.Equal(t, syncerr.KindLocalStore, syncerr.KindOf(err))

	after, err := os.ReadFile(f.statePath)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed persistence must leave the previous state byte-identical")
}

func TestPull_FailsFastWhenLockHeld(t *testing.T) {
	f := newFixture(t)

	unlock, err := f.states.Lock()
	require.NoError(t, err)
	defer unlock()

	_, err = f.eng.Pull(context.Background())
	require.Error(t, err)
	assert.Equal(t, syncerr.KindLockHeld, syncerr.KindOf(err))
}

func TestSync_PushThenPull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.fake.AddList("L", "My Tasks")
	f.fake.AddTask("L", "r1", "remote only", false, syncTime.Add(-time.Hour))
	_, err := f.notes.Create(ctx, "local only")
	require.NoError(t, err)

	sum, err := f.eng.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.RemoteCreated, "local-only note pushed")
	assert.Equal(t, 1, sum.LocalCreated, "remote-only task pulled")

	st := f.loadState(t)
	assert.Len(t, st.Mappings, 2)
	assert.NotNil(t, st.LastPullAt)
	assert.NotNil(t, st.LastPushAt)
}
