package todoform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo-tracker/internal/model"
	"github.com/nhle/todo-tracker/internal/theme"
)

// TodoSubmitMsg is dispatched when the user submits the new-todo form.
type TodoSubmitMsg struct {
	Title       string
	Description string
	Priority    model.Priority
	CategoryID  string
	DueDate     string
}

// TodoFormCancelMsg is dispatched when the user cancels the form.
type TodoFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	categoryID  string
	dueDate     string
}

// Model is the Bubble Tea model for the add-todo form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	categories []model.Category
	width      int
	height     int
}

// New creates a new todo form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.DefaultPriority},
		width:  width,
		height: height,
	}
}

// Start initializes the form with the current categories, preselecting the
// active one.
func (m *Model) Start(categories []model.Category, activeCategoryID string) tea.Cmd {
	m.categories = categories
	m.fb.title = ""
	m.fb.description = ""
	m.fb.priority = model.DefaultPriority
	m.fb.categoryID = activeCategoryID
	m.fb.dueDate = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Todo") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		m.categoryField(),
		huh.NewInput().
			Title("Due Date").
			Placeholder(model.DueDateLayout + " (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDueDate),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) categoryField() huh.Field {
	opts := make([]huh.Option[string], len(m.categories))
	for i, c := range m.categories {
		opts[i] = huh.NewOption(c.Name, c.ID)
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.categoryID)
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	return func() tea.Msg {
		return TodoSubmitMsg{
			Title:       fb.title,
			Description: fb.description,
			Priority:    fb.priority,
			CategoryID:  fb.categoryID,
			DueDate:     fb.dueDate,
		}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDueDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.ParseInLocation(model.DueDateLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid due date, use %s", model.DueDateLayout)
	}
	return nil
}
