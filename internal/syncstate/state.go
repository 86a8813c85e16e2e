// Package syncstate persists the note-to-task mapping between sync runs.
package syncstate

import (
	"time"

	"waynotes/internal/syncerr"
)

// Mapping links one local note to one remote task in one task list.
// LastKnownText and LastKnownDone record the note fields as of the last
// sync, so push can detect local edits without re-reading remote state.
type Mapping struct {
	LocalID       int64     `json:"local_id"`
	RemoteID      string    `json:"remote_id"`
	ListID        string    `json:"list_id"`
	LastKnownText string    `json:"last_known_text"`
	LastKnownDone bool      `json:"last_known_done"`
	LastSyncedAt  time.Time `json:"last_synced_at"`
}

// State is the full persisted sync state. It is loaded fresh at the start
// of every invocation and rewritten atomically at the end; nothing else
// reads or writes it.
type State struct {
	Mappings      []Mapping  `json:"mappings"`
	DefaultListID string     `json:"default_list_id"`
	LastPullAt    *time.Time `json:"last_pull_at"`
	LastPushAt    *time.Time `json:"last_push_at"`
}

// NewState returns an empty state, as created on first setup.
func NewState() *State {
	return &State{}
}

// ByLocal returns the mapping for a local note id. The returned pointer
// aliases the state and stays valid until the next Put.
func (s *State) ByLocal(id int64) (*Mapping, bool) {
	for i := range s.Mappings {
		if s.Mappings[i].LocalID == id {
			return &s.Mappings[i], true
		}
	}
	return nil, false
}

// ByRemote returns the mapping for a (remote id, list id) pair.
func (s *State) ByRemote(remoteID, listID string) (*Mapping, bool) {
	for i := range s.Mappings {
		if s.Mappings[i].RemoteID == remoteID && s.Mappings[i].ListID == listID {
			return &s.Mappings[i], true
		}
	}
	return nil, false
}

// Put inserts m, replacing any existing mapping for the same local id.
func (s *State) Put(m Mapping) {
	if existing, ok := s.ByLocal(m.LocalID); ok {
		*existing = m
		return
	}
	s.Mappings = append(s.Mappings, m)
}

// RemoveLocal drops the mapping for a local note id, if present.
func (s *State) RemoveLocal(id int64) {
	for i := range s.Mappings {
		if s.Mappings[i].LocalID == id {
			s.Mappings = append(s.Mappings[:i], s.Mappings[i+1:]...)
			return
		}
	}
}

// ListIDs returns the distinct remote list ids currently mapped.
func (s *State) ListIDs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range s.Mappings {
		if !seen[m.ListID] {
			seen[m.ListID] = true
			out = append(out, m.ListID)
		}
	}
	return out
}

// Validate checks the bijection invariant: no two mappings share a local
// id, and no two share a (remote id, list id) pair.
func (s *State) Validate() error {
	locals := make(map[int64]bool, len(s.Mappings))
	remotes := make(map[[2]string]bool, len(s.Mappings))
	for _, m := range s.Mappings {
		if locals[m.LocalID] {
			return syncerr.Newf(syncerr.KindLocalStore, "validate state",
				"duplicate mapping for local note %d", m.LocalID)
		}
		locals[m.LocalID] = true

		key := [2]string{m.RemoteID, m.ListID}
		if remotes[key] {
			return syncerr.Newf(syncerr.KindLocalStore, "validate state",
				"duplicate mapping for remote task %s in list %s", m.RemoteID, m.ListID)
		}
		remotes[key] = true
	}
	return nil
}
