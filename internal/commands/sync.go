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
	Register(&SyncCmd{})
}

// SyncCmd runs a bidirectional sync: push first, then pull, so the pull
// settles existence and newer remote edits authoritatively.
type SyncCmd struct{}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return nil }
func (c *SyncCmd) Synopsis() string  { return "Push local changes, then mirror the remote" }
func (c *SyncCmd) Usage() string     { return "waynotes sync [common flags]" }
func (c *SyncCmd) NeedsAuth() bool   { return true }

func (c *SyncCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SyncCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	eng, done, err := openEngine(cfg, svc, errOut)
	if err != nil {
		return reportError(errOut, err)
	}
	defer done()

	sum, err := eng.Sync(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, output.SyncSummary(sum))
	}
	return exitcode.Success
}
