// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoterm/internal/service"
)

// FormatTask formats one task row.
// Format: "{N:>4}  [x] {DESCRIPTION}" with an optional category suffix
// and a paperclip marker for tasks with an attachment.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Finished {
		box = "[x]"
	}

	line := fmt.Sprintf("%4d  %s %s", num, box, normalizeDescription(task.Description))
	if task.CategoryID != nil {
		line += fmt.Sprintf(" (%s)", service.CategoryName(task.CategoryID))
	}
	if task.Attachment {
		line += " *"
	}
	fmt.Fprintln(w, line)
}

// FormatCounters formats the collection-wide summary line.
func FormatCounters(w io.Writer, s service.Summary) {
	fmt.Fprintf(w, "pending %d · finished %d\n", s.Unfinished, s.Finished)
}

// FormatPageFooter formats the pagination footer. Nothing is printed
// for single-page collections.
func FormatPageFooter(w io.Writer, meta service.Pagination) {
	if meta.TotalPages <= 1 {
		return
	}
	fmt.Fprintf(w, "page %d of %d (%d tasks)\n", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
}

// normalizeDescription normalizes a task description for display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	if strings.TrimSpace(desc) == "" {
		return "(untitled)"
	}
	return desc
}
