package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/service"
	"todoterm/internal/tasksync"
)

func init() {
	Register(&CategoryCmd{})
}

// CategoryCmd implements the category command. Assigning the category
// a task already has clears it: the operation is a toggle, not a set.
type CategoryCmd struct {
	page int
}

func (c *CategoryCmd) Name() string      { return "category" }
func (c *CategoryCmd) Aliases() []string { return []string{"cat"} }
func (c *CategoryCmd) Synopsis() string  { return "Assign a priority category to a task" }
func (c *CategoryCmd) Usage() string {
	return "todoterm category [--page <n>] <num> <low|medium|high>"
}
func (c *CategoryCmd) NeedsAuth() bool { return true }

func (c *CategoryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
}

func (c *CategoryCmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if num < 1 {
		return printOutOfRange(errOut, num)
	}

	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: category required (low, medium or high)")
		return exitcode.UserError
	}
	category, ok := service.ParseCategory(args[1])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown category: %s\n", args[1])
		return exitcode.UserError
	}

	if code, ok := syncPage(ctx, syn, c.page, cfg, out, errOut); !ok {
		return code
	}

	view := syn.View()
	if num > len(view.Tasks) {
		return printOutOfRange(errOut, num)
	}

	return report(cfg, syn.AssignCategory(ctx, view.Tasks[num-1].ID, category), out, errOut)
}
