package notes_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waynotes/internal/notes"
)

func openStore(t *testing.T) (*notes.SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.db")
	store, err := notes.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestCreateAndGet(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	n, err := store.Create(ctx, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.ID)
	assert.Equal(t, "Buy milk", n.Text)
	assert.False(t, n.Done)
	assert.Nil(t, n.Completed)
	assert.WithinDuration(t, time.Now(), n.Created, 5*time.Second)

	got, err := store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.Text, got.Text)
	assert.True(t, got.Created.Equal(n.Created))
}

func TestGet_NotFound(t *testing.T) {
	store, _ := openStore(t)

	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, notes.ErrNotFound)
}

func TestMonotonicIDsAfterDelete(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "one")
	require.NoError(t, err)
	second, err := store.Create(ctx, "two")
	require.NoError(t, err)
	require.Equal(t, first.ID+1, second.ID)

	require.NoError(t, store.Delete(ctx, second.ID))

	third, err := store.Create(ctx, "three")
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID, "ids must never be reused")
}

func TestUpdate(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	n, err := store.Create(ctx, "Buy milk")
	require.NoError(t, err)

	completed := time.Now().UTC()
	require.NoError(t, store.Update(ctx, n.ID, "Buy oat milk", true, &completed))

	got, err := store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", got.Text)
	assert.True(t, got.Done)
	require.NotNil(t, got.Completed)
	assert.True(t, got.Completed.Equal(completed))

	// Flipping back clears the completed timestamp.
	require.NoError(t, store.Update(ctx, n.ID, got.Text, false, nil))
	got, err = store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, got.Done)
	assert.Nil(t, got.Completed)
}

func TestUpdate_NotFound(t *testing.T) {
	store, _ := openStore(t)

	err := store.Update(context.Background(), 99, "x", false, nil)
	assert.ErrorIs(t, err, notes.ErrNotFound)
}

func TestDelete_MissingIsNoop(t *testing.T) {
	store, _ := openStore(t)

	assert.NoError(t, store.Delete(context.Background(), 99))
}

func TestList_OrderAndPersistence(t *testing.T) {
	store, path := openStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "one")
	require.NoError(t, err)
	_, err = store.Create(ctx, "two")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopen: every call must have been durable.
	reopened, err := notes.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "one", all[0].Text)
	assert.Equal(t, "two", all[1].Text)
	assert.Less(t, all[0].ID, all[1].ID)
}

func TestUndone(t *testing.T) {
	now := time.Now()
	all := []notes.Note{
		{ID: 1, Text: "open"},
		{ID: 2, Text: "closed", Done: true, Completed: &now},
		{ID: 3, Text: "also open"},
	}

	undone := notes.Undone(all)
	require.Len(t, undone, 2)
	assert.Equal(t, int64(1), undone[0].ID)
	assert.Equal(t, int64(3), undone[1].ID)
}
