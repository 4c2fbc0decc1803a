package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"todoterm/internal/commands"
	"todoterm/internal/config"
	"todoterm/internal/exitcode"
	"todoterm/internal/service"
	"todoterm/internal/tasksync"
	"todoterm/internal/testutil"
)

// runCommand is a helper to run a command against a FakeService-backed
// synchronizer.
func runCommand(t *testing.T, cmd commands.Command, syn *tasksync.Syncer, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:      t.TempDir(),
		PageSize: 10,
		Quiet:    quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, syn, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func newSyncer(svc *testutil.FakeService) *tasksync.Syncer {
	return tasksync.New(svc, testutil.NewMemSession("tok"), &testutil.FakeNavigator{}, 10, nil)
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todoterm 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

// Tests for list command
func TestListCommand_TasksWithCounters(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	svc.AddTask("Walk dog", true)

	cmd := &commands.ListCmd{}
	cmd.SetPage(1)
	stdout, stderr, code := runCommand(t, cmd, newSyncer(svc), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "pending 1 · finished 1\n   1  [ ] Buy milk\n   2  [x] Walk dog\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	cmd.SetPage(1)
	stdout, _, code := runCommand(t, cmd, newSyncer(svc), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "no tasks found") {
		t.Errorf("expected empty notice, got %q", stdout)
	}
}

func TestListCommand_MultiPageFooter(t *testing.T) {
	svc := testutil.NewFakeService()
	for _, d := range []string{"a", "b", "c", "d", "e"} {
		svc.AddTask(d, false)
	}
	syn := tasksync.New(svc, testutil.NewMemSession("tok"), &testutil.FakeNavigator{}, 2, nil)

	cmd := &commands.ListCmd{}
	cmd.SetPage(2)
	stdout, _, code := runCommand(t, cmd, syn, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "page 2 of 3 (5 tasks)") {
		t.Errorf("expected pagination footer, got %q", stdout)
	}
	if !strings.Contains(stdout, "   1  [ ] c\n") {
		t.Errorf("expected page 2 contents, got %q", stdout)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	stdout, stderr, code := runCommand(t, cmd, newSyncer(svc), []string{"buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "task created\n" {
		t.Errorf("expected success notice, got %q", stdout)
	}
	if len(svc.CreateCalls) != 1 || svc.CreateCalls[0] != "buy milk" {
		t.Errorf("unexpected create calls: %v", svc.CreateCalls)
	}
}

func TestAddCommand_MissingDescription(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, newSyncer(svc), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "description required") {
		t.Errorf("expected description error, got %q", stderr)
	}
	if len(svc.CreateCalls) != 0 {
		t.Error("expected no create call")
	}
}

func TestAddCommand_QuietSuppressesNotice(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	stdout, _, code := runCommand(t, cmd, newSyncer(svc), []string{"task"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected quiet stdout, got %q", stdout)
	}
}

// Tests for done command
func TestDoneCommand_TogglesByPagePosition(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("first", false)
	task := svc.AddTask("second", false)

	cmd := &commands.DoneCmd{}
	stdout, _, code := runCommand(t, cmd, newSyncer(svc), []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "task updated\n" {
		t.Errorf("expected success notice, got %q", stdout)
	}
	if len(svc.PatchCalls) != 1 || svc.PatchCalls[0].ID != task.ID {
		t.Errorf("unexpected patch calls: %+v", svc.PatchCalls)
	}
	if v := svc.PatchCalls[0].Body["is_finished"]; v != true {
		t.Errorf("expected is_finished=true, got %v", svc.PatchCalls[0].Body)
	}
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("only", false)

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, newSyncer(svc), []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "out of range") {
		t.Errorf("expected out-of-range error, got %q", stderr)
	}
}

func TestDoneCommand_InvalidNumber(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, newSyncer(svc), []string{"abc"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid task number") {
		t.Errorf("expected invalid-number error, got %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("doomed", false)

	cmd := &commands.RmCmd{}
	stdout, _, code := runCommand(t, cmd, newSyncer(svc), []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "task removed\n" {
		t.Errorf("expected success notice, got %q", stdout)
	}
	if len(svc.DeleteCalls) != 1 || svc.DeleteCalls[0] != task.ID {
		t.Errorf("unexpected delete calls: %v", svc.DeleteCalls)
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("old text", false)

	cmd := &commands.EditCmd{}
	stdout, _, code := runCommand(t, cmd, newSyncer(svc), []string{"1", "new", "text"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "task updated\n" {
		t.Errorf("expected success notice, got %q", stdout)
	}
	if len(svc.PatchCalls) != 1 || svc.PatchCalls[0].ID != task.ID {
		t.Fatalf("unexpected patch calls: %+v", svc.PatchCalls)
	}
	if v := svc.PatchCalls[0].Body["description"]; v != "new text" {
		t.Errorf("expected description patch, got %v", svc.PatchCalls[0].Body)
	}
}

// Tests for category command
func TestCategoryCommand_AssignsByName(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("a", false)

	cmd := &commands.CategoryCmd{}
	_, _, code := runCommand(t, cmd, newSyncer(svc), []string{"1", "high"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if v := svc.PatchCalls[0].Body["category_id"]; v != service.CategoryHigh {
		t.Errorf("expected category high, got %v", svc.PatchCalls[0].Body)
	}
	got := svc.Tasks()
	if got[0].ID != task.ID || got[0].CategoryID == nil || *got[0].CategoryID != service.CategoryHigh {
		t.Errorf("category not applied: %+v", got[0])
	}
}

func TestCategoryCommand_SameCategoryClears(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("a", false)
	med := service.CategoryMedium
	svc.SetCategory(task.ID, &med)

	cmd := &commands.CategoryCmd{}
	_, _, code := runCommand(t, cmd, newSyncer(svc), []string{"1", "medium"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if v, ok := svc.PatchCalls[0].Body["category_id"]; !ok || v != nil {
		t.Errorf("expected explicit null, got %v", svc.PatchCalls[0].Body)
	}
}

func TestCategoryCommand_UnknownName(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", false)

	cmd := &commands.CategoryCmd{}
	_, stderr, code := runCommand(t, cmd, newSyncer(svc), []string{"1", "urgent"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unknown category") {
		t.Errorf("expected unknown-category error, got %q", stderr)
	}
	if len(svc.PatchCalls) != 0 {
		t.Error("expected no patch call")
	}
}

// Tests for attach/detach commands
func TestAttachDetachCommands(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", false)

	attach := &commands.AttachCmd{}
	if _, _, code := runCommand(t, attach, newSyncer(svc), []string{"1"}, false); code != exitcode.Success {
		t.Fatalf("attach failed with code %d", code)
	}
	if v := svc.PatchCalls[0].Body["attachment"]; v != true {
		t.Errorf("expected attachment=true, got %v", svc.PatchCalls[0].Body)
	}

	detach := &commands.DetachCmd{}
	if _, _, code := runCommand(t, detach, newSyncer(svc), []string{"1"}, false); code != exitcode.Success {
		t.Fatalf("detach failed with code %d", code)
	}
	if v := svc.PatchCalls[1].Body["attachment"]; v != false {
		t.Errorf("expected attachment=false, got %v", svc.PatchCalls[1].Body)
	}
}

// Session expiry surfaces through any authenticated command.
func TestDoneCommand_UnauthorizedMapsToAuthExit(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", false)
	svc.PatchErr = service.ErrUnauthorized
	store := testutil.NewMemSession("tok")
	nav := &testutil.FakeNavigator{}
	syn := tasksync.New(svc, store, nav, 10, nil)

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, syn, []string{"1"}, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "session expired") {
		t.Errorf("expected session-expired notice, got %q", stderr)
	}
	if store.ClearCalls != 1 {
		t.Errorf("expected session cleared, got %d clears", store.ClearCalls)
	}
	if nav.Calls != 1 {
		t.Errorf("expected navigation signal, got %d", nav.Calls)
	}
}
