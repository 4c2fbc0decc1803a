// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task backend.
// All HTTP calls go through this interface; the synchronizer and the
// commands never talk to the wire directly.
//
// Every operation requires a valid bearer credential and fails with
// ErrUnauthorized when the service rejects it. Any other failure
// (non-2xx status, network error, malformed response) is a plain
// service error. No operation retries automatically.
type Service interface {
	// ListTasks returns one page of tasks plus pagination metadata and
	// the collection-wide summary. page is 1-based.
	ListTasks(ctx context.Context, page, limit int) (TaskPage, error)

	// CreateTask creates a task with the given description.
	// The server assigns the identifier. Succeeds only on 201.
	CreateTask(ctx context.Context, description string) (Task, error)

	// PatchTask applies exactly one field-group change to a task.
	// Succeeds only on 200.
	PatchTask(ctx context.Context, id string, change Change) (Task, error)

	// DeleteTask deletes a task. Succeeds only on 200.
	DeleteTask(ctx context.Context, id string) error
}
