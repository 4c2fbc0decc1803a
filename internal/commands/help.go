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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todoterm help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todoterm                                        List tasks on page 1
  todoterm list [common flags] [--page <n>] [--sort]
  todoterm add [common flags] <description...>
  todoterm create [common flags] <description...>
  todoterm done [common flags] [--page <n>] <num>
  todoterm rm [common flags] [--page <n>] <num>
  todoterm edit [common flags] [--page <n>] <num> <description...>
  todoterm category [common flags] [--page <n>] <num> <low|medium|high>
  todoterm attach [common flags] [--page <n>] <num>
  todoterm detach [common flags] [--page <n>] <num>
  todoterm ui [common flags]
  todoterm login [common flags] [--email <email>] [--password <password>]
  todoterm logout [common flags]
  todoterm help
  todoterm version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Task numbers are 1-based positions on the displayed page. Assigning a
category a task already has clears it again.
`
