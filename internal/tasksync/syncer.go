// Package tasksync owns the authoritative local view of the task
// collection and keeps it consistent with the paginated, summarized
// remote source of truth. Every mutation goes through exactly one
// remote call followed by a full page refresh; the visible list is
// always re-derived from the server, never patched locally.
package tasksync

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"todoterm/internal/order"
	"todoterm/internal/service"
)

// ErrUnknownTask indicates the referenced task is not on the currently
// loaded page.
var ErrUnknownTask = errors.New("unknown task")

// ErrEmptyDescription indicates a create or rename with no text.
var ErrEmptyDescription = errors.New("description is required")

// SessionStore is the persistent client storage the synchronizer reads
// the credential from. Any error from Credential means the credential
// is absent or unusable; the operation must not touch the network.
type SessionStore interface {
	Credential() (string, error)
	SaveSnapshot(data []byte) error
	Clear() error
}

// Navigator receives the single "go to authentication entry point"
// signal. The core never manipulates the surface directly.
type Navigator interface {
	GotoLogin()
}

// ViewState is a read-only copy of the current view: one page of tasks
// (in display order), its pagination metadata, the collection-wide
// summary, and the transient UI markers the core owns.
type ViewState struct {
	Tasks   []service.Task
	Meta    service.Pagination
	Summary service.Summary

	// Page is the requested page number (1-based). It may briefly
	// differ from Meta.CurrentPage while a refresh is in flight.
	Page int

	// Sorted reports whether the local ordering engine is applied on
	// top of the fetched baseline order.
	Sorted bool

	// PendingCategoryEdit holds the id of the at-most-one task whose
	// category picker is open, or "".
	PendingCategoryEdit string
}

// Syncer is the task list synchronization core. There is exactly one
// logical writer; state replacement is atomic from the reader's
// perspective.
type Syncer struct {
	svc      service.Service
	store    SessionStore
	nav      Navigator
	pageSize int
	log      *zap.Logger

	mu          sync.Mutex
	tasks       []service.Task
	meta        service.Pagination
	summary     service.Summary
	page        int
	eng         order.Engine
	pendingEdit string

	// seq is the latest issued refresh sequence. A fetch result is
	// applied only if its sequence is still the latest, so a
	// late-arriving response for a stale page can never overwrite a
	// newer page's data.
	seq uint64
}

// New creates a Syncer with an empty view state. The first Refresh
// populates it.
func New(svc service.Service, store SessionStore, nav Navigator, pageSize int, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return &Syncer{
		svc:      svc,
		store:    store,
		nav:      nav,
		pageSize: pageSize,
		log:      log,
		page:     1,
	}
}

// SetNavigator replaces the navigation collaborator. A surface that
// observes unauthorized outcomes directly (the TUI) passes nil.
func (s *Syncer) SetNavigator(nav Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = nav
}

// View returns a copy of the current view state.
func (s *Syncer) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ViewState{
		Tasks:               s.eng.Apply(s.tasks),
		Meta:                s.meta,
		Summary:             s.summary,
		Page:                s.page,
		Sorted:              s.eng.Active(),
		PendingCategoryEdit: s.pendingEdit,
	}
}

// Task returns the task with the given id from the currently loaded page.
func (s *Syncer) Task(id string) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskLocked(id)
}

func (s *Syncer) taskLocked(id string) (service.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Refresh fetches the current page and replaces the whole view state
// (items, pagination metadata, summary) atomically. The fetched result
// is also persisted to client storage as an advisory snapshot.
func (s *Syncer) Refresh(ctx context.Context) Outcome {
	return s.refresh(ctx)
}

// SetPage changes the requested page number and refreshes.
func (s *Syncer) SetPage(ctx context.Context, page int) Outcome {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	return s.refresh(ctx)
}

// Create creates a task with the given description, then refreshes.
func (s *Syncer) Create(ctx context.Context, description string) Outcome {
	if strings.TrimSpace(description) == "" {
		return Outcome{Op: OpCreate, Kind: OutcomeInvalid, Err: ErrEmptyDescription}
	}
	return s.mutate(ctx, OpCreate, func(ctx context.Context) error {
		_, err := s.svc.CreateTask(ctx, description)
		return err
	})
}

// Rename replaces a task's description.
func (s *Syncer) Rename(ctx context.Context, id, description string) Outcome {
	if strings.TrimSpace(description) == "" {
		return Outcome{Op: OpUpdate, Kind: OutcomeInvalid, Err: ErrEmptyDescription}
	}
	if _, ok := s.Task(id); !ok {
		return Outcome{Op: OpUpdate, Kind: OutcomeInvalid, Err: ErrUnknownTask}
	}
	return s.patch(ctx, id, service.DescriptionChange(description))
}

// ToggleFinished flips a task's completion flag.
func (s *Syncer) ToggleFinished(ctx context.Context, id string) Outcome {
	t, ok := s.Task(id)
	if !ok {
		return Outcome{Op: OpUpdate, Kind: OutcomeInvalid, Err: ErrUnknownTask}
	}
	return s.patch(ctx, id, service.FinishedChange(!t.Finished))
}

// AssignCategory assigns a category to a task. Assigning the task's
// current category clears it instead: this is a toggle, not a set.
func (s *Syncer) AssignCategory(ctx context.Context, id string, category int) Outcome {
	t, ok := s.Task(id)
	if !ok {
		return Outcome{Op: OpUpdate, Kind: OutcomeInvalid, Err: ErrUnknownTask}
	}

	s.mu.Lock()
	s.pendingEdit = ""
	s.mu.Unlock()

	var change service.Change
	if t.CategoryID != nil && *t.CategoryID == category {
		change = service.CategoryChange(nil)
	} else {
		change = service.CategoryChange(&category)
	}
	return s.patch(ctx, id, change)
}

// SetAttachment sets a task's attachment flag.
func (s *Syncer) SetAttachment(ctx context.Context, id string, attachment bool) Outcome {
	if _, ok := s.Task(id); !ok {
		return Outcome{Op: OpUpdate, Kind: OutcomeInvalid, Err: ErrUnknownTask}
	}
	return s.patch(ctx, id, service.AttachmentChange(attachment))
}

// Delete removes a task, then refreshes.
func (s *Syncer) Delete(ctx context.Context, id string) Outcome {
	return s.mutate(ctx, OpDelete, func(ctx context.Context) error {
		return s.svc.DeleteTask(ctx, id)
	})
}

// ToggleSort flips the local sort on or off. The first toggle shows the
// loaded page ordered by completion flag; the second restores the
// fetched order. No remote call is made.
func (s *Syncer) ToggleSort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.Toggle()
}

// StartCategoryEdit marks a task as having its category picker open.
// At most one task can be marked at a time; marking the same task again
// closes the picker.
func (s *Syncer) StartCategoryEdit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingEdit == id {
		s.pendingEdit = ""
		return
	}
	s.pendingEdit = id
}

// CancelCategoryEdit closes the category picker.
func (s *Syncer) CancelCategoryEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingEdit = ""
}

func (s *Syncer) patch(ctx context.Context, id string, change service.Change) Outcome {
	return s.mutate(ctx, OpUpdate, func(ctx context.Context) error {
		_, err := s.svc.PatchTask(ctx, id, change)
		return err
	})
}

// mutate performs exactly one task mutation, then refreshes the current
// page regardless of the mutation's own success. The refresh is skipped
// only when the credential was just cleared.
func (s *Syncer) mutate(ctx context.Context, op Op, call func(context.Context) error) Outcome {
	if _, err := s.store.Credential(); err != nil {
		return s.expire(op, err)
	}

	if err := call(ctx); err != nil {
		if service.IsUnauthorized(err) {
			return s.expire(op, err)
		}
		if o := s.refresh(ctx); o.Kind == OutcomeUnauthorized {
			return o
		}
		return Outcome{Op: op, Kind: OutcomeFailed, Err: err}
	}

	// A refresh failure after a successful mutation is surfaced as its
	// own outcome: the mutation took effect remotely but the visible
	// list is stale, and staying silent about that misleads the user.
	if o := s.refresh(ctx); o.Kind != OutcomeOK {
		return o
	}
	return Outcome{Op: op, Kind: OutcomeOK}
}

func (s *Syncer) refresh(ctx context.Context) Outcome {
	if _, err := s.store.Credential(); err != nil {
		return s.expire(OpRefresh, err)
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	page := s.page
	s.mu.Unlock()

	tp, err := s.svc.ListTasks(ctx, page, s.pageSize)
	if err != nil {
		if service.IsUnauthorized(err) {
			return s.expire(OpRefresh, err)
		}
		return Outcome{Op: OpRefresh, Kind: OutcomeFailed, Err: err}
	}

	s.mu.Lock()
	if seq != s.seq {
		// A newer refresh was issued while this one was in flight;
		// discard the stale result.
		s.mu.Unlock()
		s.log.Debug("discarded stale page", zap.Int("page", page))
		return Outcome{Op: OpRefresh, Kind: OutcomeOK}
	}
	s.tasks = append(s.tasks[:0:0], tp.Items...)
	s.meta = tp.Meta
	s.summary = tp.Summary
	// The freshly fetched order is the new baseline.
	s.eng.Reset()
	s.mu.Unlock()

	// Advisory snapshot only; a write failure must not fail the refresh.
	if data, err := json.Marshal(tp); err == nil {
		if err := s.store.SaveSnapshot(data); err != nil {
			s.log.Debug("snapshot write failed", zap.Error(err))
		}
	}
	return Outcome{Op: OpRefresh, Kind: OutcomeOK}
}

// expire wipes all persisted client state and signals the navigator.
// Terminal for the current user action: no further remote call follows.
func (s *Syncer) expire(op Op, err error) Outcome {
	if cerr := s.store.Clear(); cerr != nil {
		s.log.Debug("session clear failed", zap.Error(cerr))
	}
	s.mu.Lock()
	nav := s.nav
	s.mu.Unlock()
	if nav != nil {
		nav.GotoLogin()
	}
	return Outcome{Op: op, Kind: OutcomeUnauthorized, Err: err}
}
