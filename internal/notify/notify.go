// Package notify maps synchronization outcomes to user-facing notices.
// The core never renders anything itself; surfaces implement Notifier
// and decide how a Notice is shown.
package notify

import (
	"time"

	"todoterm/internal/tasksync"
)

// Severity of a notice.
type Severity int

const (
	Info Severity = iota
	Error
)

// DefaultDuration is how long a notice should stay visible.
const DefaultDuration = 8 * time.Second

// Notice is one user-facing notification request.
type Notice struct {
	Message  string
	Severity Severity
	Duration time.Duration
}

// Notifier accepts notification requests from a surface.
type Notifier interface {
	Notify(n Notice)
}

// Render maps an outcome to a notice. The second return is false when
// the outcome should not be surfaced (successful refreshes are silent).
func Render(o tasksync.Outcome) (Notice, bool) {
	switch o.Kind {
	case tasksync.OutcomeOK:
		switch o.Op {
		case tasksync.OpCreate:
			return info("task created"), true
		case tasksync.OpUpdate:
			return info("task updated"), true
		case tasksync.OpDelete:
			return info("task removed"), true
		default:
			return Notice{}, false
		}
	case tasksync.OutcomeUnauthorized:
		return fail("session expired, please sign in again"), true
	case tasksync.OutcomeFailed:
		switch o.Op {
		case tasksync.OpCreate:
			return fail("could not create the task, contact the administrator"), true
		case tasksync.OpUpdate:
			return fail("could not update the task, contact the administrator"), true
		case tasksync.OpDelete:
			return fail("could not remove the task, contact the administrator"), true
		default:
			return fail("could not fetch tasks, contact the administrator"), true
		}
	case tasksync.OutcomeInvalid:
		if o.Err != nil {
			return fail(o.Err.Error()), true
		}
		return fail("invalid request"), true
	}
	return Notice{}, false
}

func info(msg string) Notice {
	return Notice{Message: msg, Severity: Info, Duration: DefaultDuration}
}

func fail(msg string) Notice {
	return Notice{Message: msg, Severity: Error, Duration: DefaultDuration}
}
