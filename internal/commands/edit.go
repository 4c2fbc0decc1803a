package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/tasksync"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: it replaces a task's description.
type EditCmd struct {
	page int
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's description" }
func (c *EditCmd) Usage() string     { return "todoterm edit [--page <n>] <num> <description...>" }
func (c *EditCmd) NeedsAuth() bool   { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if num < 1 {
		return printOutOfRange(errOut, num)
	}

	description := strings.Join(args[1:], " ")
	if strings.TrimSpace(description) == "" {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	if code, ok := syncPage(ctx, syn, c.page, cfg, out, errOut); !ok {
		return code
	}

	view := syn.View()
	if num > len(view.Tasks) {
		return printOutOfRange(errOut, num)
	}

	return report(cfg, syn.Rename(ctx, view.Tasks[num-1].ID, description), out, errOut)
}
