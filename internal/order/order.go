// Package order implements the client-side ordering of the currently
// loaded page by completion flag. It never makes a remote call.
package order

import (
	"sort"

	"todoterm/internal/service"
)

// Engine holds the binary sort toggle. The freshly fetched order of a
// page is the baseline; toggling once shows the page with unfinished
// tasks first, toggling again restores the baseline. Ties (tasks
// sharing a completion flag) always keep their baseline order.
type Engine struct {
	active bool
}

// Toggle flips the sort on or off.
func (e *Engine) Toggle() {
	e.active = !e.active
}

// Active reports whether the sort is applied.
func (e *Engine) Active() bool {
	return e.active
}

// Reset turns the sort off. Called when a new page becomes the baseline.
func (e *Engine) Reset() {
	e.active = false
}

// Apply returns the display order for the given baseline. The baseline
// slice is not modified.
func (e *Engine) Apply(baseline []service.Task) []service.Task {
	out := make([]service.Task, len(baseline))
	copy(out, baseline)
	if !e.active {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Finished == out[j].Finished {
			return false
		}
		return !out[i].Finished
	})
	return out
}
