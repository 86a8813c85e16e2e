package syncstate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waynotes/internal/syncerr"
	"waynotes/internal/syncstate"
)

func TestLookups(t *testing.T) {
	st := syncstate.NewState()
	st.Put(syncstate.Mapping{LocalID: 1, RemoteID: "r1", ListID: "L"})
	st.Put(syncstate.Mapping{LocalID: 2, RemoteID: "r2", ListID: "L"})

	m, ok := st.ByLocal(1)
	require.True(t, ok)
	assert.Equal(t, "r1", m.RemoteID)

	m, ok = st.ByRemote("r2", "L")
	require.True(t, ok)
	assert.Equal(t, int64(2), m.LocalID)

	_, ok = st.ByRemote("r2", "other-list")
	assert.False(t, ok)
}

func TestPut_ReplacesByLocalID(t *testing.T) {
	st := syncstate.NewState()
	st.Put(syncstate.Mapping{LocalID: 1, RemoteID: "r1", ListID: "L"})
	st.Put(syncstate.Mapping{LocalID: 1, RemoteID: "r9", ListID: "L2"})

	require.Len(t, st.Mappings, 1)
	assert.Equal(t, "r9", st.Mappings[0].RemoteID)
}

func TestRemoveLocal(t *testing.T) {
	st := syncstate.NewState()
	st.Put(syncstate.Mapping{LocalID: 1, RemoteID: "r1", ListID: "L"})
	st.Put(syncstate.Mapping{LocalID: 2, RemoteID: "r2", ListID: "L"})

	st.RemoveLocal(1)
	require.Len(t, st.Mappings, 1)
	assert.Equal(t, int64(2), st.Mappings[0].LocalID)

	st.RemoveLocal(42) // no-op
	assert.Len(t, st.Mappings, 1)
}

func TestListIDs(t *testing.T) {
	st := syncstate.NewState()
	st.Put(syncstate.Mapping{LocalID: 1, RemoteID: "r1", ListID: "L1"})
	st.Put(syncstate.Mapping{LocalID: 2, RemoteID: "r2", ListID: "L2"})
	st.Put(syncstate.Mapping{LocalID: 3, RemoteID: "r3", ListID: "L1"})

	assert.ElementsMatch(t, []string{"L1", "L2"}, st.ListIDs())
}

func TestValidate_Bijection(t *testing.T) {
	tests := []struct {
		name     string
		mappings []syncstate.Mapping
		wantErr  bool
	}{
		{
			name: "distinct entries pass",
			mappings: []syncstate.Mapping{
				{LocalID: 1, RemoteID: "r1", ListID: "L"},
				{LocalID: 2, RemoteID: "r2", ListID: "L"},
				{LocalID: 3, RemoteID: "r1", ListID: "L2"}, // same remote id, other list
			},
		},
		{
			name: "duplicate local id fails",
			mappings: []syncstate.Mapping{
				{LocalID: 1, RemoteID: "r1", ListID: "L"},
				{LocalID: 1, RemoteID: "r2", ListID: "L"},
			},
			wantErr: true,
		},
		{
			name: "duplicate remote pair fails",
			mappings: []syncstate.Mapping{
				{LocalID: 1, RemoteID: "r1", ListID: "L"},
				{LocalID: 2, RemoteID: "r1", ListID: "L"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &syncstate.State{Mappings: tt.mappings}
			err := st.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, syncerr.KindLocalStore, syncerr.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMappingTimestamps(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := syncstate.NewState()
	st.Put(syncstate.Mapping{LocalID: 1, RemoteID: "r1", ListID: "L", LastSyncedAt: at})

	m, ok := st.ByLocal(1)
	require.True(t, ok)
	assert.True(t, m.LastSyncedAt.Equal(at))
}
