package commands

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"time"

	"waynotes/internal/config"
	"waynotes/internal/exitcode"
	"waynotes/internal/notes"
	"waynotes/internal/output"
	"waynotes/internal/service"
)

func init() {
	Register(&WidgetCmd{})
}

// WidgetCmd emits the status-bar JSON payload. The bar invokes it
// periodically; each invocation prints one JSON object and exits.
type WidgetCmd struct {
	at int64 // unix seconds; 0 means now (settable for testing)
}

// SetAt pins the cycle clock (for testing).
func (c *WidgetCmd) SetAt(unixSeconds int64) {
	c.at = unixSeconds
}

func (c *WidgetCmd) Name() string      { return "widget" }
func (c *WidgetCmd) Aliases() []string { return nil }
func (c *WidgetCmd) Synopsis() string  { return "Print the status-bar JSON payload" }
func (c *WidgetCmd) Usage() string     { return "waynotes widget [common flags]" }
func (c *WidgetCmd) NeedsAuth() bool   { return false }

func (c *WidgetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WidgetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store, err := openNotesStore(cfg)
	if err != nil {
		return reportError(errOut, err)
	}
	defer store.Close()

	all, err := store.List(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	at := time.Now()
	if c.at != 0 {
		at = time.Unix(c.at, 0)
	}

	w := output.BuildWidget(notes.Undone(all), at)
	enc := json.NewEncoder(out)
	// The tooltip carries literal markup entities; don't re-escape them.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return reportError(errOut, err)
	}
	return exitcode.Success
}
