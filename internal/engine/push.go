package engine

import (
	"context"

	"waynotes/internal/notes"
	"waynotes/internal/syncerr"
	"waynotes/internal/syncstate"
)

// push reads the local notes first (a local store failure aborts before
// any remote call), computes the plan, performs the remote calls, and
// persists the state once everything succeeded. Push never reads remote
// field values: a concurrent remote edit is overwritten until the next
// pull, which is authoritative.
func (e *Engine) push(ctx context.Context, st *syncstate.State) (Summary, error) {
	local, err := e.notes.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	present := make(map[int64]bool, len(local))
	var changed []notes.Note
	var unmapped []notes.Note
	for _, n := range local {
		present[n.ID] = true
		m, ok := st.ByLocal(n.ID)
		switch {
		case !ok:
			unmapped = append(unmapped, n)
		case n.Text != m.LastKnownText || n.Done != m.LastKnownDone:
			changed = append(changed, n)
		}
	}
	var stale []syncstate.Mapping
	for _, m := range st.Mappings {
		if !present[m.LocalID] {
			stale = append(stale, m)
		}
	}

	if len(unmapped) > 0 && st.DefaultListID == "" {
		lists, err := e.remote.ListLists(ctx)
		if err != nil {
			return Summary{}, err
		}
		if len(lists) == 0 {
			return Summary{}, syncerr.Newf(syncerr.KindRemoteAPI, "push",
				"no remote task lists exist; create one first")
		}
		st.DefaultListID = lists[0].ID
	}

	now := e.now()
	var sum Summary

	for _, n := range changed {
		m, _ := st.ByLocal(n.ID)
		if err := e.remote.UpdateTask(ctx, m.ListID, m.RemoteID, n.Text, n.Done); err != nil {
			return Summary{}, err
		}
		m.LastKnownText = n.Text
		m.LastKnownDone = n.Done
		m.LastSyncedAt = now
		sum.RemoteUpdated++
		e.log.Debug("pushed note update", "note", n.ID, "remote", m.RemoteID)
	}

	for _, n := range unmapped {
		t, err := e.remote.CreateTask(ctx, st.DefaultListID, n.Text, n.Done)
		if err != nil {
			return Summary{}, err
		}
		st.Put(syncstate.Mapping{
			LocalID:       n.ID,
			RemoteID:      t.ID,
			ListID:        st.DefaultListID,
			LastKnownText: n.Text,
			LastKnownDone: n.Done,
			LastSyncedAt:  now,
		})
		sum.RemoteCreated++
		e.log.Debug("pushed new note", "note", n.ID, "remote", t.ID)
	}

	for _, m := range stale {
		// The note was deleted locally: an explicit user action, so it
		// propagates. This is the only path by which push deletes remotely.
		if err := e.remote.DeleteTask(ctx, m.ListID, m.RemoteID); err != nil {
			return Summary{}, err
		}
		st.RemoveLocal(m.LocalID)
		sum.RemoteDeleted++
		e.log.Debug("pushed note deletion", "note", m.LocalID, "remote", m.RemoteID)
	}

	st.LastPushAt = &now

	if err := e.states.Save(st); err != nil {
		return Summary{}, err
	}
	return sum, nil
}
