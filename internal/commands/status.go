package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"waynotes/internal/config"
	"waynotes/internal/engine"
	"waynotes/internal/exitcode"
	"waynotes/internal/output"
	"waynotes/internal/service"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd prints a read-only report of the sync state. It is the
// default command and performs no network or note store I/O.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return nil }
func (c *StatusCmd) Synopsis() string  { return "Show sync state summary" }
func (c *StatusCmd) Usage() string     { return "waynotes status [common flags]" }
func (c *StatusCmd) NeedsAuth() bool   { return false }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	report, err := engine.ReadStatus(stateStore(cfg))
	if err != nil {
		return reportError(errOut, err)
	}

	fmt.Fprintln(out, output.StatusLine(report))
	return exitcode.Success
}
