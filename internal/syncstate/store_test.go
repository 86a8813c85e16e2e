package syncstate_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waynotes/internal/syncerr"
	"waynotes/internal/syncstate"
)

func newFileStore(t *testing.T) (*syncstate.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sync_state.json")
	return syncstate.NewFileStore(path, filepath.Join(dir, "sync.lock")), path
}

func TestLoad_MissingFileIsEmptyState(t *testing.T) {
	store, _ := newFileStore(t)

	st, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Mappings)
	assert.Nil(t, st.LastPullAt)
	assert.Nil(t, st.LastPushAt)
	assert.Empty(t, st.DefaultListID)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store, _ := newFileStore(t)

	pulled := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := syncstate.NewState()
	st.DefaultListID = "L"
	st.LastPullAt = &pulled
	st.Put(syncstate.Mapping{
		LocalID:       1,
		RemoteID:      "r1",
		ListID:        "L",
		LastKnownText: "Buy milk",
		LastSyncedAt:  pulled,
	})

	require.NoError(t, store.Save(st))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "L", got.DefaultListID)
	require.NotNil(t, got.LastPullAt)
	assert.True(t, got.LastPullAt.Equal(pulled))
	require.Len(t, got.Mappings, 1)
	assert.Equal(t, st.Mappings[0].RemoteID, got.Mappings[0].RemoteID)
	assert.Equal(t, st.Mappings[0].LastKnownText, got.Mappings[0].LastKnownText)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	store, path := newFileStore(t)
	require.NoError(t, store.Save(syncstate.NewState()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".sync_state-")
	}
}

func TestSave_RejectsInvalidState(t *testing.T) {
	store, path := newFileStore(t)

	bad := &syncstate.State{Mappings: []syncstate.Mapping{
		{LocalID: 1, RemoteID: "r1", ListID: "L"},
		{LocalID: 1, RemoteID: "r2", ListID: "L"},
	}}
	err := store.Save(bad)
	require.Error(t, err)
	assert.Equal(t, syncerr.KindLocalStore, syncerr.KindOf(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid state must not be written")
}

func TestLoad_CorruptFile(t *testing.T) {
	store, path := newFileStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, syncerr.KindLocalStore, syncerr.KindOf(err))
}

func TestLock_Exclusive(t *testing.T) {
	store, _ := newFileStore(t)

	unlock, err := store.Lock()
	require.NoError(t, err)

	_, err = store.Lock()
	require.Error(t, err)
	assert.Equal(t, syncerr.KindLockHeld, syncerr.KindOf(err))

	require.NoError(t, unlock())

	unlock2, err := store.Lock()
	require.NoError(t, err)
	require.NoError(t, unlock2())
}
