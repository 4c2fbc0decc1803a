package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/output"
	"todoterm/internal/tasksync"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todoterm` (no args) and `todoterm list`.
type ListCmd struct {
	page     int
	sortFlag bool
}

// SetPage sets the page number (for testing).
func (c *ListCmd) SetPage(page int) {
	c.page = page
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todoterm list [--page <n>] [--sort]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
	fs.BoolVar(&c.sortFlag, "sort", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}

	if code, ok := syncPage(ctx, syn, c.page, cfg, out, errOut); !ok {
		return code
	}

	if c.sortFlag {
		syn.ToggleSort()
	}

	view := syn.View()

	output.FormatCounters(out, view.Summary)

	if len(view.Tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range view.Tasks {
		output.FormatTask(out, i+1, task)
	}

	output.FormatPageFooter(out, view.Meta)
	return exitcode.Success
}
