package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/tasksync"
	"todoterm/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd launches the interactive full-screen interface.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive interface" }
func (c *UICmd) Usage() string     { return "todoterm ui [common flags]" }
func (c *UICmd) NeedsAuth() bool   { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	// The TUI observes unauthorized outcomes itself and must not have
	// re-auth hints printed over its screen.
	syn.SetNavigator(nil)

	if err := ui.Run(ctx, cfg, syn); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
