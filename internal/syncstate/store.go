package syncstate

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"waynotes/internal/syncerr"
)

// Unlock releases the advisory sync lock.
type Unlock func() error

// Store abstracts sync state persistence so the engine can be tested with
// injected save failures.
type Store interface {
	// Load reads the persisted state. A missing file yields the empty state.
	Load() (*State, error)

	// Save atomically replaces the persisted state.
	Save(*State) error

	// Lock takes the exclusive advisory lock guarding the whole
	// load-mutate-persist sequence. Fails fast with KindLockHeld when
	// another invocation holds it.
	Lock() (Unlock, error)
}

// FileStore persists the state as JSON with temp-file-plus-rename
// replacement, so a crash mid-write never leaves a half-written file.
type FileStore struct {
	path     string
	lockPath string
}

// NewFileStore creates a store writing to path, guarded by a flock on
// lockPath.
func NewFileStore(path, lockPath string) *FileStore {
	return &FileStore{path: path, lockPath: lockPath}
}

// Load reads and validates the persisted state.
func (fs *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewState(), nil
	}
	if err != nil {
		return nil, syncerr.New(syncerr.KindLocalStore, "load state", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, syncerr.New(syncerr.KindLocalStore, "load state", err)
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return &st, nil
}

// Save validates and atomically replaces the persisted state. On failure
// the previous file is left intact.
func (fs *FileStore) Save(st *State) error {
	if err := st.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return syncerr.New(syncerr.KindLocalStore, "save state", err)
	}
	data = append(data, '\n')

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(fs.path), ".sync_state-*")
	if err != nil {
		return syncerr.New(syncerr.KindLocalStore, "save state", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return syncerr.New(syncerr.KindLocalStore, "save state", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return syncerr.New(syncerr.KindLocalStore, "save state", err)
	}
	if err := tmp.Close(); err != nil {
		return syncerr.New(syncerr.KindLocalStore, "save state", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return syncerr.New(syncerr.KindLocalStore, "save state", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		return syncerr.New(syncerr.KindLocalStore, "save state", err)
	}
	return nil
}

// Lock takes a non-blocking exclusive flock on the lock file. Contention
// means another sync is in progress.
func (fs *FileStore) Lock() (Unlock, error) {
	f, err := os.OpenFile(fs.lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, syncerr.New(syncerr.KindLocalStore, "open lock file", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, syncerr.New(syncerr.KindLockHeld, "lock state", err)
		}
		return nil, syncerr.New(syncerr.KindLocalStore, "lock state", err)
	}

	return func() error {
		// Closing the descriptor releases the flock.
		return f.Close()
	}, nil
}
