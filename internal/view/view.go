// Package view computes the derived, display-ready ordering of the todo
// collection. Its functions are pure: they never mutate their inputs and
// return identical output for identical input, so the UI can re-derive the
// list on every refresh.
package view

import (
	"sort"
	"strings"

	"github.com/nhle/todo-tracker/internal/model"
)

// DeriveView orders a copy of todos by the given sort mode and then narrows
// it to entries matching searchText. Unknown sort modes behave like
// time-desc; a blank query passes the ordered result through unchanged.
func DeriveView(todos []model.Todo, mode model.SortMode, searchText string) []model.Todo {
	ordered := sortTodos(todos, mode)
	return filterTodos(ordered, searchText)
}

// sortTodos returns a sorted copy of todos. Every non-time mode breaks ties
// by id descending, so equal-priority and equal-due entries stay in
// newest-first order deterministically.
func sortTodos(todos []model.Todo, mode model.SortMode) []model.Todo {
	sorted := make([]model.Todo, len(todos))
	copy(sorted, todos)

	var less func(a, b model.Todo) bool
	switch mode {
	case model.SortTimeAsc:
		less = func(a, b model.Todo) bool { return a.ID < b.ID }
	case model.SortPriorityDesc:
		less = func(a, b model.Todo) bool {
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() > b.Priority.Rank()
			}
			return a.ID > b.ID
		}
	case model.SortPriorityAsc:
		less = func(a, b model.Todo) bool {
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() < b.Priority.Rank()
			}
			return a.ID > b.ID
		}
	case model.SortDueDesc:
		less = func(a, b model.Todo) bool {
			if a.DueMillis() != b.DueMillis() {
				return a.DueMillis() > b.DueMillis()
			}
			return a.ID > b.ID
		}
	case model.SortDueAsc:
		less = func(a, b model.Todo) bool {
			if a.DueMillis() != b.DueMillis() {
				return a.DueMillis() < b.DueMillis()
			}
			return a.ID > b.ID
		}
	default:
		// time-desc, and the fallback for unrecognized modes.
		less = func(a, b model.Todo) bool { return a.ID > b.ID }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// filterTodos keeps todos whose title or description contains the trimmed,
// case-folded query as a substring, preserving the incoming order.
func filterTodos(todos []model.Todo, searchText string) []model.Todo {
	query := strings.ToLower(strings.TrimSpace(searchText))
	if query == "" {
		return todos
	}

	matched := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Description), query) {
			matched = append(matched, t)
		}
	}
	return matched
}
