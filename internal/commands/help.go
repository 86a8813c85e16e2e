package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"waynotes/internal/config"
	"waynotes/internal/exitcode"
	"waynotes/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "waynotes help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  waynotes                         Show sync status
  waynotes status  [common flags]  Show sync status
  waynotes setup   [common flags]  Initialize sync state from the remote service
  waynotes pull    [common flags]  Mirror remote tasks onto local notes
  waynotes push    [common flags]  Upload local note changes to the remote service
  waynotes sync    [common flags]  Push, then pull
  waynotes add     [common flags] <text...>
  waynotes done    [common flags] <id>
  waynotes rm      [common flags] <id>
  waynotes list    [common flags] [--open]
  waynotes widget  [common flags]  Print the status-bar JSON payload
  waynotes login   [common flags]
  waynotes logout  [common flags]
  waynotes help
  waynotes version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
