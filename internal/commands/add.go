package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"waynotes/internal/config"
	"waynotes/internal/exitcode"
	"waynotes/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd creates a local note. It reaches the remote service only on the
// next push.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Create a local note" }
func (c *AddCmd) Usage() string     { return "waynotes add [common flags] <text...>" }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: note text required")
		return exitcode.UserError
	}

	store, err := openNotesStore(cfg)
	if err != nil {
		return reportError(errOut, err)
	}
	defer store.Close()

	n, err := store.Create(ctx, text)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "added note %d\n", n.ID)
	}
	return exitcode.Success
}
