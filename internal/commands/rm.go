package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"waynotes/internal/config"
	"waynotes/internal/exitcode"
	"waynotes/internal/notes"
	"waynotes/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd deletes a local note. The deletion reaches the remote service on
// the next push.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a local note" }
func (c *RmCmd) Usage() string     { return "waynotes rm [common flags] <id>" }
func (c *RmCmd) NeedsAuth() bool   { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseNoteID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	store, err := openNotesStore(cfg)
	if err != nil {
		return reportError(errOut, err)
	}
	defer store.Close()

	if _, err := store.Get(ctx, id); err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			fmt.Fprintf(errOut, "error: note not found: %d\n", id)
			return exitcode.UserError
		}
		return reportError(errOut, err)
	}

	if err := store.Delete(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
