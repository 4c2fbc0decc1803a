package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todoterm/internal/backend/resttasks"
	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/session"
	"todoterm/internal/tasksync"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: it exchanges an email/password
// pair for a bearer token and stores it in the session store.
type LoginCmd struct {
	email    string
	password string

	// stdin overrides os.Stdin for prompting (tests).
	stdin io.Reader
}

// SetStdin sets the prompt input source (for testing).
func (c *LoginCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in to the task service" }
func (c *LoginCmd) Usage() string     { return "todoterm login [--email <email>] [--password <password>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, syn *tasksync.Syncer, args []string, out, errOut io.Writer) int {
	in := c.stdin
	if in == nil {
		in = os.Stdin
	}
	reader := bufio.NewReader(in)

	email := c.email
	if email == "" {
		fmt.Fprint(out, "email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	password := c.password
	if password == "" {
		fmt.Fprint(out, "password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		password = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	token, err := resttasks.Login(ctx, cfg.BaseURL, email, password)
	if err != nil {
		if errors.Is(err, resttasks.ErrBadCredentials) {
			fmt.Fprintln(errOut, "error: invalid email or password")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	store, err := session.Open(cfg.StatePath)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	defer store.Close()

	if err := store.SetCredential(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to store credential: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
