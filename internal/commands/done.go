package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"waynotes/internal/config"
	"waynotes/internal/exitcode"
	"waynotes/internal/notes"
	"waynotes/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles a note's done status.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Toggle a note's done status" }
func (c *DoneCmd) Usage() string     { return "waynotes done [common flags] <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseNoteID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	store, err := openNotesStore(cfg)
	if err != nil {
		return reportError(errOut, err)
	}
	defer store.Close()

	n, err := store.Get(ctx, id)
	if errors.Is(err, notes.ErrNotFound) {
		fmt.Fprintf(errOut, "error: note not found: %d\n", id)
		return exitcode.UserError
	}
	if err != nil {
		return reportError(errOut, err)
	}

	var completed *time.Time
	if !n.Done {
		now := time.Now()
		completed = &now
	}
	if err := store.Update(ctx, id, n.Text, !n.Done, completed); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseNoteID extracts a single numeric note id from args.
func parseNoteID(args []string, errOut io.Writer) (int64, bool) {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: note id required")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		fmt.Fprintf(errOut, "error: invalid note id: %s\n", args[0])
		return 0, false
	}
	return id, true
}
