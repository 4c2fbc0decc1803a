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
	Register(&AttachCmd{})
	Register(&DetachCmd{})
}

// AttachCmd marks a task as having an attachment.
type AttachCmd struct {
	page int
}

func (c *AttachCmd) Name() string      { return "attach" }
func (c *AttachCmd) Aliases() []string { return nil }
func (c *AttachCmd) Synopsis() string  { return "Mark a task as having an attachment" }
func (c *AttachCmd) Usage() string     { return "todoterm attach [--page <n>] <num>" }
func (c *AttachCmd) NeedsAuth() bool   { return true }

func (c *AttachCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
}

func (c *AttachCmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	return runAttachment(ctx, cfg, syn, c.page, args, true, out, errOut)
}

// DetachCmd clears a task's attachment flag.
type DetachCmd struct {
	page int
}

func (c *DetachCmd) Name() string      { return "detach" }
func (c *DetachCmd) Aliases() []string { return nil }
func (c *DetachCmd) Synopsis() string  { return "Clear a task's attachment flag" }
func (c *DetachCmd) Usage() string     { return "todoterm detach [--page <n>] <num>" }
func (c *DetachCmd) NeedsAuth() bool   { return true }

func (c *DetachCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
}

func (c *DetachCmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	return runAttachment(ctx, cfg, syn, c.page, args, false, out, errOut)
}

func runAttachment(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, page int, args []string, attachment bool, out, errOut io.Writer) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if num < 1 {
		return printOutOfRange(errOut, num)
	}

	if code, ok := syncPage(ctx, syn, page, cfg, out, errOut); !ok {
		return code
	}

	view := syn.View()
	if num > len(view.Tasks) {
		return printOutOfRange(errOut, num)
	}

	return report(cfg, syn.SetAttachment(ctx, view.Tasks[num-1].ID, attachment), out, errOut)
}
