package tasksync

// Op identifies the user action an outcome belongs to.
type Op int

const (
	OpRefresh Op = iota
	OpCreate
	OpUpdate
	OpDelete
)

// OutcomeKind classifies how an operation ended.
type OutcomeKind int

const (
	// OutcomeOK: the remote call succeeded.
	OutcomeOK OutcomeKind = iota

	// OutcomeUnauthorized: the credential was missing or rejected. The
	// session has been cleared and the navigator signalled; no further
	// remote call was made for this action.
	OutcomeUnauthorized

	// OutcomeFailed: the remote call failed for any other reason. The
	// session is intact and the view keeps its last synchronized value.
	OutcomeFailed

	// OutcomeInvalid: the request was rejected locally before any
	// remote call (e.g. empty description, unknown task).
	OutcomeInvalid
)

// Outcome is the structured result of one operation. The core reports
// outcomes; the presentation layer decides how to render them.
type Outcome struct {
	Op   Op
	Kind OutcomeKind
	Err  error
}
