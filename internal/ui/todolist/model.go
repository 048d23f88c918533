package todolist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo-tracker/internal/domain"
	"github.com/nhle/todo-tracker/internal/keys"
	"github.com/nhle/todo-tracker/internal/model"
	"github.com/nhle/todo-tracker/internal/theme"
	"github.com/nhle/todo-tracker/internal/view"
)

type listMode int

const (
	modeBrowse listMode = iota
	modeSearch
	modeConfirmDelete
)

// formBindings holds the delete-confirm state on the heap so that huh's
// Value() pointer remains valid across Bubble Tea model copies.
type formBindings struct {
	confirm     bool
	deleteID    int64
	deleteTitle string
}

// Model is the Bubble Tea model for the todo list view. The rendered items
// are always the view engine's output over the domain store's current
// state, re-derived after every mutation.
type Model struct {
	store *domain.Store
	keys  *keys.KeyMap

	mode        listMode
	list        list.Model
	searchInput textinput.Model

	confirmForm *huh.Form
	fb          *formBindings

	width  int
	height int
}

// New creates a todo list model over the given domain store.
func New(s *domain.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New(nil, ItemDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "search title or description"
	si.Prompt = "/ "
	si.CharLimit = 120

	m := Model{
		store:       s,
		keys:        k,
		list:        l,
		searchInput: si,
		fb:          &formBindings{},
		width:       width,
		height:      height,
	}
	m.Reload()
	return m
}

// Reload re-derives the displayed items from the domain store.
func (m *Model) Reload() {
	todos := view.DeriveView(m.store.Todos(), m.store.SortMode(), m.store.SearchText())

	items := make([]list.Item, len(todos))
	for i, t := range todos {
		name, _ := m.store.CategoryName(t.CategoryID)
		items[i] = TodoItem{Todo: t, CategoryName: name}
	}
	m.list.SetItems(items)

	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

// InputActive reports whether the list currently owns text input (search
// field or delete confirm), so the parent should not intercept plain keys.
func (m Model) InputActive() bool {
	return m.mode != modeBrowse
}

// SelectedTodo returns the currently highlighted todo.
func (m Model) SelectedTodo() (model.Todo, bool) {
	item, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return item.Todo, true
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.store.SearchText())
		return m, m.searchInput.Focus()

	case key.Matches(keyMsg, m.keys.CycleSort):
		m.store.SetSortMode(nextSortMode(m.store.SortMode()))
		m.Reload()
		return m, nil

	case key.Matches(keyMsg, m.keys.Toggle):
		if todo, ok := m.SelectedTodo(); ok {
			m.store.ToggleTodo(todo.ID)
			m.Reload()
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.DeleteTodo):
		todo, ok := m.SelectedTodo()
		if !ok {
			return m, nil
		}
		m.fb.deleteID = todo.ID
		m.fb.deleteTitle = todo.Title
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.mode = modeBrowse
			m.searchInput.Blur()
			return m, nil
		case "esc":
			m.mode = modeBrowse
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			m.store.SetSearchText("")
			m.Reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.store.SetSearchText(m.searchInput.Value())
	m.Reload()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeBrowse
		return m, nil
	}

	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}

	if m.confirmForm.State == huh.StateCompleted {
		if m.fb.confirm {
			m.store.DeleteTodo(m.fb.deleteID)
			m.Reload()
		}
		m.mode = modeBrowse
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeBrowse
		return m, nil
	}

	return m, cmd
}

func (m Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", m.fb.deleteTitle)).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth())
}

// View renders the list with its search bar and sort summary.
func (m Model) View() string {
	if m.mode == modeConfirmDelete && m.confirmForm != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.confirmForm.View())
	}

	var b strings.Builder

	sortLine := theme.HelpStyle.Render("sort: " + m.store.SortMode().Label())
	b.WriteString(sortLine)
	b.WriteString("\n")

	if m.mode == modeSearch || strings.TrimSpace(m.store.SearchText()) != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	if len(m.list.Items()) == 0 {
		b.WriteString("\n")
		b.WriteString(m.emptyHint())
	} else {
		b.WriteString(m.list.View())
	}

	return b.String()
}

func (m Model) emptyHint() string {
	style := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true).PaddingLeft(2)
	if strings.TrimSpace(m.store.SearchText()) != "" {
		return style.Render("No matching todos.")
	}
	return style.Render("No todos yet. Press 'n' to add one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	// Reserve lines for the sort summary and search bar.
	listHeight := height - 2
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(width, listHeight)
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

// nextSortMode advances through the sort modes in declaration order.
func nextSortMode(current model.SortMode) model.SortMode {
	for i, mode := range model.SortModes {
		if mode == current {
			return model.SortModes[(i+1)%len(model.SortModes)]
		}
	}
	return model.DefaultSortMode
}
