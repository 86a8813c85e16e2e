package engine

import (
	"context"
	"errors"
	"time"

	"waynotes/internal/notes"
	"waynotes/internal/service"
	"waynotes/internal/syncstate"
)

type remoteKey struct {
	remoteID string
	listID   string
}

// pull fetches every task from every remote list, computes the full plan,
// and only then mutates the note store and the state copy. A failure to
// reach any single list aborts the whole pull before any local write, so
// there is never a partial mirror.
func (e *Engine) pull(ctx context.Context, st *syncstate.State) (Summary, error) {
	lists, err := e.remote.ListLists(ctx)
	if err != nil {
		return Summary{}, err
	}

	var observed []service.Task
	observedKeys := make(map[remoteKey]bool)
	for _, list := range lists {
		tasks, err := e.remote.ListTasks(ctx, list.ID)
		if err != nil {
			return Summary{}, err
		}
		for _, t := range tasks {
			observed = append(observed, t)
			observedKeys[remoteKey{t.ID, t.ListID}] = true
		}
		e.log.Debug("pulled list", "list", list.Title, "tasks", len(tasks))
	}

	// Plan before any local mutation.
	var toCreate []service.Task
	var toUpdate []service.Task
	for _, t := range observed {
		m, ok := st.ByRemote(t.ID, t.ListID)
		switch {
		case !ok:
			toCreate = append(toCreate, t)
		case t.Updated.After(m.LastSyncedAt):
			toUpdate = append(toUpdate, t)
		}
	}
	var toDelete []syncstate.Mapping
	for _, m := range st.Mappings {
		if !observedKeys[remoteKey{m.RemoteID, m.ListID}] {
			toDelete = append(toDelete, m)
		}
	}

	now := e.now()
	var sum Summary

	for _, t := range toUpdate {
		err := e.notes.Update(ctx, mustByRemote(st, t).LocalID, t.Title, t.Done(), completedAt(t, now))
		if errors.Is(err, notes.ErrNotFound) {
			// The note was deleted locally since the last sync. Leave the
			// mapping so the next push forwards the deletion.
			e.log.Debug("skipping update of locally deleted note", "remote", t.ID)
			continue
		}
		if err != nil {
			return Summary{}, err
		}
		m := mustByRemote(st, t)
		m.LastKnownText = t.Title
		m.LastKnownDone = t.Done()
		m.LastSyncedAt = now
		sum.LocalUpdated++
		e.log.Debug("updated note from remote", "note", m.LocalID, "remote", t.ID)
	}

	for _, t := range toCreate {
		n, err := e.notes.Create(ctx, t.Title)
		if err != nil {
			return Summary{}, err
		}
		if t.Done() {
			if err := e.notes.Update(ctx, n.ID, t.Title, true, completedAt(t, now)); err != nil {
				return Summary{}, err
			}
		}
		st.Put(syncstate.Mapping{
			LocalID:       n.ID,
			RemoteID:      t.ID,
			ListID:        t.ListID,
			LastKnownText: t.Title,
			LastKnownDone: t.Done(),
			LastSyncedAt:  now,
		})
		sum.LocalCreated++
		e.log.Debug("created note from remote", "note", n.ID, "remote", t.ID)
	}

	for _, m := range toDelete {
		// Remote task gone: the remote service wins on existence.
		if err := e.notes.Delete(ctx, m.LocalID); err != nil {
			return Summary{}, err
		}
		st.RemoveLocal(m.LocalID)
		sum.LocalDeleted++
		e.log.Debug("deleted note gone from remote", "note", m.LocalID, "remote", m.RemoteID)
	}

	if st.DefaultListID == "" && len(lists) > 0 {
		st.DefaultListID = lists[0].ID
	}
	st.LastPullAt = &now

	if err := e.states.Save(st); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func mustByRemote(st *syncstate.State, t service.Task) *syncstate.Mapping {
	m, _ := st.ByRemote(t.ID, t.ListID)
	return m
}

// completedAt picks the completion timestamp for a done task, falling back
// to the sync time when the remote service did not report one.
func completedAt(t service.Task, now time.Time) *time.Time {
	if !t.Done() {
		return nil
	}
	if t.Completed != nil {
		return t.Completed
	}
	return &now
}
