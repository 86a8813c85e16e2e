package commands

import (
	"fmt"
	"io"
	"log/slog"

	"waynotes/internal/config"
	"waynotes/internal/engine"
	"waynotes/internal/exitcode"
	"waynotes/internal/notes"
	"waynotes/internal/service"
	"waynotes/internal/syncerr"
	"waynotes/internal/syncstate"
)

// newLogger builds the debug logger. Without --debug all engine logging
// is discarded.
func newLogger(cfg *config.Config, errOut io.Writer) *slog.Logger {
	if cfg.Debug {
		return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stateStore returns the file-backed sync state for the configured paths.
func stateStore(cfg *config.Config) *syncstate.FileStore {
	return syncstate.NewFileStore(cfg.SyncStatePath(), cfg.LockPath())
}

// openNotesStore opens the local note store, creating the config directory
// if needed.
func openNotesStore(cfg *config.Config) (*notes.SQLiteStore, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, syncerr.New(syncerr.KindLocalStore, "create config dir", err)
	}
	return notes.Open(cfg.NotesDBPath())
}

// openEngine wires a sync engine over the configured stores and the remote
// service. The returned func closes the note store.
func openEngine(cfg *config.Config, svc service.Service, errOut io.Writer) (*engine.Engine, func(), error) {
	store, err := openNotesStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	eng := engine.New(svc, store, stateStore(cfg), newLogger(cfg, errOut))
	return eng, func() { store.Close() }, nil
}

// reportError prints a one-line message naming the error kind and maps it
// to the process exit code.
func reportError(errOut io.Writer, err error) int {
	switch syncerr.KindOf(err) {
	case syncerr.KindAuthExpired:
		fmt.Fprintf(errOut, "error: %v (run: waynotes login)\n", err)
		return exitcode.AuthError
	case syncerr.KindNetwork, syncerr.KindRemoteAPI:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	case syncerr.KindLocalStore:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.LocalError
	case syncerr.KindLockHeld:
		fmt.Fprintln(errOut, "error: another sync is already running")
		return exitcode.LockError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
}
