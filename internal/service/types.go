// Package service defines the backend-agnostic interface for task operations.
package service

// Category identifiers as assigned by the ToDoList service.
// A nil CategoryID means the task has no category.
const (
	CategoryLow    = 1
	CategoryMedium = 2
	CategoryHigh   = 3
)

// Task represents a single task item. JSON tags follow the wire format.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	Attachment  bool   `json:"attachment"`
	CategoryID  *int   `json:"category_id"`
	Finished    bool   `json:"is_finished"`
}

// Pagination describes the position of one page within the whole collection.
// CurrentPage is 1-based.
type Pagination struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// Summary holds finished/unfinished counts computed server-side over the
// entire collection, independent of pagination.
type Summary struct {
	Finished   int `json:"finished"`
	Unfinished int `json:"unfinished"`
}

// TaskPage is the shape of a list response: one page of tasks plus
// pagination metadata and the collection-wide summary.
type TaskPage struct {
	Items   []Task     `json:"items"`
	Meta    Pagination `json:"meta"`
	Summary Summary    `json:"summary"`
}

// CategoryName returns the display name for a category identifier.
func CategoryName(id *int) string {
	if id == nil {
		return "none"
	}
	switch *id {
	case CategoryLow:
		return "low"
	case CategoryMedium:
		return "medium"
	case CategoryHigh:
		return "high"
	default:
		return "none"
	}
}

// ParseCategory maps a category name to its identifier.
// Returns 0 and false for unknown names.
func ParseCategory(name string) (int, bool) {
	switch name {
	case "low":
		return CategoryLow, true
	case "medium":
		return CategoryMedium, true
	case "high":
		return CategoryHigh, true
	default:
		return 0, false
	}
}
