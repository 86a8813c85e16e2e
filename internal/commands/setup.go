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
	Register(&SetupCmd{})
}

// SetupCmd bootstraps a fresh sync state from whatever exists remotely.
// Local notes present before setup stay unmapped until explicitly pushed.
type SetupCmd struct{}

func (c *SetupCmd) Name() string      { return "setup" }
func (c *SetupCmd) Aliases() []string { return nil }
func (c *SetupCmd) Synopsis() string  { return "Initialize sync state from the remote service" }
func (c *SetupCmd) Usage() string     { return "waynotes setup [common flags]" }
func (c *SetupCmd) NeedsAuth() bool   { return true }

func (c *SetupCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SetupCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	eng, done, err := openEngine(cfg, svc, errOut)
	if err != nil {
		return reportError(errOut, err)
	}
	defer done()

	sum, err := eng.Setup(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, output.PullSummary(sum))
	}
	return exitcode.Success
}
