// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task).
	UserError = 1

	// AuthError indicates a missing or expired session.
	AuthError = 2

	// BackendError indicates a task service or network error.
	BackendError = 3
)
