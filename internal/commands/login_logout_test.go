package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"todoterm/internal/commands"
	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/session"
)

// parseFlags runs the command's flag registration the way the
// dispatcher does and returns the remaining positional args.
func parseFlags(t *testing.T, cmd commands.Command, args []string) []string {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return fs.Args()
}

func TestLoginCommand_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "fresh-token"})
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := &config.Config{
		BaseURL:   srv.URL,
		StatePath: filepath.Join(dir, "state.db"),
		Dir:       dir,
	}

	cmd := &commands.LoginCmd{}
	args := parseFlags(t, cmd, []string{"--email", "a@b.c", "--password", "secret"})

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, args, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected ok, got %q", outBuf.String())
	}

	store, err := session.Open(cfg.StatePath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
	if got, err := store.Credential(); err != nil || got != "fresh-token" {
		t.Errorf("expected stored token, got %q (err %v)", got, err)
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := &config.Config{
		BaseURL:   srv.URL,
		StatePath: filepath.Join(dir, "state.db"),
		Dir:       dir,
	}

	cmd := &commands.LoginCmd{}
	args := parseFlags(t, cmd, []string{"--email", "a@b.c", "--password", "wrong"})

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, args, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(errBuf.String(), "invalid email or password") {
		t.Errorf("expected credential error, got %q", errBuf.String())
	}
}

func TestLoginCommand_MissingEmail(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		BaseURL:   "http://unused.invalid",
		StatePath: filepath.Join(dir, "state.db"),
		Dir:       dir,
	}

	cmd := &commands.LoginCmd{}
	cmd.SetStdin(strings.NewReader("\n"))
	args := parseFlags(t, cmd, []string{"--password", "secret"})

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, args, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(errBuf.String(), "email required") {
		t.Errorf("expected email error, got %q", errBuf.String())
	}
}

func TestLoginCommand_PromptsForCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" || body["password"] != "secret" {
			t.Errorf("unexpected body %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := &config.Config{
		BaseURL:   srv.URL,
		StatePath: filepath.Join(dir, "state.db"),
		Dir:       dir,
	}

	cmd := &commands.LoginCmd{}
	cmd.SetStdin(strings.NewReader("a@b.c\nsecret\n"))

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if !strings.Contains(outBuf.String(), "email: ") || !strings.Contains(outBuf.String(), "password: ") {
		t.Errorf("expected prompts, got %q", outBuf.String())
	}
}

func TestLogoutCommand_ClearsState(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.db")

	store, err := session.Open(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetCredential("tok"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	cfg := &config.Config{StatePath: statePath, Dir: dir}
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected ok, got %q", outBuf.String())
	}

	store2, err := session.Open(statePath)
	if err != nil {
		t.Fatal(err)
	}
	defer store2.Close()
	if store2.HasCredential() {
		t.Error("expected credential cleared")
	}
}

func TestLogoutCommand_NotSignedIn(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{StatePath: filepath.Join(dir, "state.db"), Dir: dir}
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "not signed in\n" {
		t.Errorf("expected not-signed-in notice, got %q", outBuf.String())
	}
}
