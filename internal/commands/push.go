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
	Register(&PushCmd{})
}

// PushCmd uploads local note changes to the remote service.
type PushCmd struct{}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Upload local note changes to the remote service" }
func (c *PushCmd) Usage() string     { return "waynotes push [common flags]" }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	eng, done, err := openEngine(cfg, svc, errOut)
	if err != nil {
		return reportError(errOut, err)
	}
	defer done()

	sum, err := eng.Push(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, output.PushSummary(sum))
	}
	return exitcode.Success
}
