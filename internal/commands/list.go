package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"waynotes/internal/config"
	"waynotes/internal/exitcode"
	"waynotes/internal/notes"
	"waynotes/internal/output"
	"waynotes/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd prints the local notes.
type ListCmd struct {
	open bool
}

// SetOpen restricts the listing to undone notes (for testing).
func (c *ListCmd) SetOpen(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List local notes" }
func (c *ListCmd) Usage() string     { return "waynotes list [common flags] [--open]" }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store, err := openNotesStore(cfg)
	if err != nil {
		return reportError(errOut, err)
	}
	defer store.Close()

	all, err := store.List(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if c.open {
		all = notes.Undone(all)
	}

	if len(all) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no notes")
		}
		return exitcode.Success
	}

	for _, n := range all {
		output.FormatNote(out, n)
	}
	return exitcode.Success
}
