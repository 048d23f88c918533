package todolist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo-tracker/internal/model"
	"github.com/nhle/todo-tracker/internal/theme"
)

// TodoItem wraps a model.Todo so it can be used in a bubbles/list, carrying
// the resolved category name for display.
type TodoItem struct {
	Todo         model.Todo
	CategoryName string
}

// FilterValue returns the string used for list filtering. The list's own
// fuzzy filter is disabled (search runs through the view engine instead),
// but bubbles/list requires the method.
func (i TodoItem) FilterValue() string { return i.Todo.Title }

// ItemDelegate implements list.ItemDelegate for rendering todo lines.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single todo line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TodoItem)
	if !ok {
		return
	}

	todo := ti.Todo

	var prefix string
	if todo.Completed {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	priBadge := theme.PriorityStyle(string(todo.Priority)).Render(priorityLabel(todo.Priority))

	categoryBadge := ""
	if ti.CategoryName != "" {
		categoryBadge = theme.CategoryBadgeStyle.Render(" [" + ti.CategoryName + "]")
	}

	dueStr := ""
	if due, ok := todo.DueTime(); ok {
		style := theme.DueDateStyle
		switch remaining := time.Until(due); {
		case remaining <= 0:
			style = theme.OverdueStyle
		case remaining <= 5*time.Minute:
			style = theme.DueSoonStyle
		}
		dueStr = style.Render(" due " + due.Format("Jan 02 15:04"))
	}

	line := fmt.Sprintf("%s %s %s%s%s", prefix, priBadge, todo.Title, categoryBadge, dueStr)

	if todo.Completed {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// priorityLabel returns the short badge text for a priority level.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "HIGH"
	case model.PriorityMedium:
		return "MED"
	case model.PriorityLow:
		return "LOW"
	default:
		return "?"
	}
}
