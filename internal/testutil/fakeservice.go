// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"todoterm/internal/service"
)

// ListCall records one ListTasks invocation.
type ListCall struct {
	Page  int
	Limit int
}

// PatchCall records one PatchTask invocation with its wire body.
type PatchCall struct {
	ID   string
	Body map[string]any
}

// FakeService is an in-memory implementation of service.Service for
// testing. It paginates and summarizes like the real backend and
// records every call it receives.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task

	// Error injection for testing
	ListErr   error
	CreateErr error
	PatchErr  error
	DeleteErr error

	// Recorded calls
	ListCalls   []ListCall
	CreateCalls []string
	PatchCalls  []PatchCall
	DeleteCalls []string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task and returns it. The id is server-assigned.
func (f *FakeService) AddTask(description string, finished bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:          uuid.NewString(),
		Description: description,
		UserID:      "user-1",
		Finished:    finished,
	}
	f.tasks = append(f.tasks, t)
	return t
}

// SetCategory seeds a category on an existing task.
func (f *FakeService) SetCategory(id string, category *int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].CategoryID = category
			return
		}
	}
}

// Tasks returns a copy of all stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, page, limit int) (service.TaskPage, error) {
	f.mu.Lock()
	f.ListCalls = append(f.ListCalls, ListCall{Page: page, Limit: limit})
	f.mu.Unlock()

	if f.ListErr != nil {
		return service.TaskPage{}, f.ListErr
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	total := len(f.tasks)
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	items := make([]service.Task, end-start)
	copy(items, f.tasks[start:end])

	var summary service.Summary
	for _, t := range f.tasks {
		if t.Finished {
			summary.Finished++
		} else {
			summary.Unfinished++
		}
	}

	return service.TaskPage{
		Items: items,
		Meta: service.Pagination{
			TotalItems:   total,
			ItemCount:    len(items),
			ItemsPerPage: limit,
			TotalPages:   totalPages,
			CurrentPage:  page,
		},
		Summary: summary,
	}, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, description string) (service.Task, error) {
	f.mu.Lock()
	f.CreateCalls = append(f.CreateCalls, description)
	f.mu.Unlock()

	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	return f.AddTask(description, false), nil
}

// PatchTask implements service.Service. The change is applied through
// its wire body, exactly as the backend would see it.
func (f *FakeService) PatchTask(ctx context.Context, id string, change service.Change) (service.Task, error) {
	body := change.Body()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.PatchCalls = append(f.PatchCalls, PatchCall{ID: id, Body: body})

	if f.PatchErr != nil {
		return service.Task{}, f.PatchErr
	}

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if v, ok := body["description"]; ok {
			f.tasks[i].Description = v.(string)
		}
		if v, ok := body["category_id"]; ok {
			if v == nil {
				f.tasks[i].CategoryID = nil
			} else {
				c := v.(int)
				f.tasks[i].CategoryID = &c
			}
		}
		if v, ok := body["is_finished"]; ok {
			f.tasks[i].Finished = v.(bool)
		}
		if v, ok := body["attachment"]; ok {
			f.tasks[i].Attachment = v.(bool)
		}
		return f.tasks[i], nil
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls = append(f.DeleteCalls, id)

	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
