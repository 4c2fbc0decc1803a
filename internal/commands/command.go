// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/notify"
	"todoterm/internal/tasksync"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored session.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, page size).
	// syn is nil if NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int
}

// report renders an outcome through the notifier and maps it to an
// exit code.
func report(cfg *config.Config, o tasksync.Outcome, out, errOut io.Writer) int {
	n, show := notify.Render(o)
	if show {
		notify.Writer{Out: out, ErrOut: errOut, Quiet: cfg.Quiet}.Notify(n)
	}

	switch o.Kind {
	case tasksync.OutcomeOK:
		return exitcode.Success
	case tasksync.OutcomeUnauthorized:
		return exitcode.AuthError
	case tasksync.OutcomeInvalid:
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}

// syncPage moves the synchronizer to the requested page and reports
// whether the refresh succeeded. Used by every command that addresses
// a task by its page-relative number.
func syncPage(ctx context.Context, syn *tasksync.Syncer, page int, cfg *config.Config, out, errOut io.Writer) (int, bool) {
	o := syn.SetPage(ctx, page)
	if o.Kind != tasksync.OutcomeOK {
		return report(cfg, o, out, errOut), false
	}
	return exitcode.Success, true
}

func printOutOfRange(errOut io.Writer, num int) int {
	fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
	return exitcode.UserError
}
