package model

import (
	"strings"
	"time"
)

// Priority levels for a todo.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority is assigned when the caller does not pick a level.
const DefaultPriority = PriorityMedium

// DueDateLayout is the minute-precision local timestamp format used for
// Todo.DueDate, both in the UI and in the persisted JSON.
const DueDateLayout = "2006-01-02 15:04"

// Rank returns the comparison weight of a priority: high > medium > low.
// Unrecognized values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Todo is a single task item created and managed by the user.
//
// The ID doubles as the creation-time ordering key: it is minted from the
// creation timestamp in milliseconds, so newer todos always carry larger ids.
type Todo struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`

	// CategoryID references a Category by id. It is a weak reference: the
	// domain store reassigns it when the category is deleted, and "" means
	// unassigned.
	CategoryID string `json:"categoryId"`

	// DueDate is a local timestamp in DueDateLayout, or "" for no deadline.
	DueDate string `json:"dueDate,omitempty"`
}

// DueTime parses the todo's due date in the local time zone.
// The second return value is false when no deadline is set or the stored
// string does not match DueDateLayout.
func (t Todo) DueTime() (time.Time, bool) {
	raw := strings.TrimSpace(t.DueDate)
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(DueDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// DueMillis returns the due time in Unix milliseconds for due-based sorting.
// Todos without a parseable deadline fall back to their creation id, which
// is itself a millisecond timestamp.
func (t Todo) DueMillis() int64 {
	if due, ok := t.DueTime(); ok {
		return due.UnixMilli()
	}
	return t.ID
}
