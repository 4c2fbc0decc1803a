package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/tasksync"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: it toggles a task's completion
// flag, so `done` on a finished task reopens it.
type DoneCmd struct {
	page int
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "todoterm done [--page <n>] <num>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if num < 1 {
		return printOutOfRange(errOut, num)
	}

	if code, ok := syncPage(ctx, syn, c.page, cfg, out, errOut); !ok {
		return code
	}

	view := syn.View()
	if num > len(view.Tasks) {
		return printOutOfRange(errOut, num)
	}

	return report(cfg, syn.ToggleFinished(ctx, view.Tasks[num-1].ID), out, errOut)
}
