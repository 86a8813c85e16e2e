package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"waynotes/internal/config"
	"waynotes/internal/exitcode"
	"waynotes/internal/output"
	"waynotes/internal/service"
)

func init() {
	Register(&PullCmd{})
}

// PullCmd mirrors the remote task lists onto the local note store.
type PullCmd struct{}

func (c *PullCmd) Name() string      { return "pull" }
func (c *PullCmd) Aliases() []string { return nil }
func (c *PullCmd) Synopsis() string  { return "Mirror remote tasks onto local notes" }
func (c *PullCmd) Usage() string     { return "waynotes pull [common flags]" }
func (c *PullCmd) NeedsAuth() bool   { return true }

func (c *PullCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PullCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	eng, done, err := openEngine(cfg, svc, errOut)
	if err != nil {
		return reportError(errOut, err)
	}
	defer done()

	sum, err := eng.Pull(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, output.PullSummary(sum))
	}
	return exitcode.Success
}
