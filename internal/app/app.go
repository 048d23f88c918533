package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo-tracker/internal/domain"
	"github.com/nhle/todo-tracker/internal/keys"
	"github.com/nhle/todo-tracker/internal/reminder"
	"github.com/nhle/todo-tracker/internal/theme"
	"github.com/nhle/todo-tracker/internal/ui"
	"github.com/nhle/todo-tracker/internal/ui/categorymgr"
	helpview "github.com/nhle/todo-tracker/internal/ui/help"
	"github.com/nhle/todo-tracker/internal/ui/todoform"
	"github.com/nhle/todo-tracker/internal/ui/todolist"
)

// toastClearMsg removes the transient reminder line from the status bar.
type toastClearMsg struct{}

// toastDuration is how long a reminder toast stays visible.
const toastDuration = 8 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewTodoCreate
	ViewCategories
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and delivery of reminder events to the status bar.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *domain.Store
	keys         *keys.KeyMap
	scheduler    *reminder.Scheduler

	todoList     todolist.Model
	todoForm     todoform.Model
	categoryView categorymgr.Model
	helpView     helpview.Model

	ready bool
	toast string
}

// New creates the root application model over the given domain store and
// reminder scheduler.
func New(s *domain.Store, sched *reminder.Scheduler) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:  ViewList,
		store:        s,
		keys:         k,
		scheduler:    sched,
		todoList:     todolist.New(s, k, 80, 24),
		todoForm:     todoform.New(80, 24),
		categoryView: categorymgr.New(s, k, 80, 24),
		helpView:     helpview.New(k, 80, 24),
	}
}

// Init starts the reminder scheduler and subscribes to its events.
func (m Model) Init() tea.Cmd {
	return m.scheduler.Start()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.todoList.SetSize(contentWidth, contentHeight)
		m.todoForm.SetSize(contentWidth, contentHeight)
		m.categoryView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case reminder.Event:
		m.toast = fmt.Sprintf("Reminder: %q is due at %s", msg.Title, msg.DueAt.Format("15:04"))
		m.todoList.Reload()
		return m, tea.Batch(
			m.scheduler.WaitForNextEvent(),
			tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastClearMsg{} }),
		)

	case toastClearMsg:
		m.toast = ""
		return m, nil

	case todoform.TodoSubmitMsg:
		m.currentView = ViewList
		if !m.store.AddTodo(msg.Title, msg.Description, msg.Priority, msg.CategoryID, msg.DueDate) {
			m.toast = "Could not add todo: a title and an existing category are required"
		}
		m.todoList.Reload()
		return m, nil

	case todoform.TodoFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case categorymgr.CategoryListCloseMsg:
		m.currentView = ViewList
		m.todoList.Reload()
		return m, nil

	case categorymgr.CategoryChangedMsg:
		m.todoList.Reload()
		return m, nil

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the current view.
// Plain letters are not intercepted while a text input owns the keyboard.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		m.scheduler.Stop()
		return m, tea.Quit, true
	}

	if m.currentView == ViewList && m.todoList.InputActive() {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewList {
			m.scheduler.Stop()
			return m, tea.Quit, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil, true
		}

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}

	case "n":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewTodoCreate
			return m, m.todoForm.Start(m.store.Categories(), m.store.ActiveCategoryID()), true
		}

	case "c":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewCategories
			m.categoryView.Reload()
			return m, nil, true
		}
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.todoList, cmd = m.todoList.Update(msg)
	case ViewTodoCreate:
		m.todoForm, cmd = m.todoForm.Update(msg)
	case ViewCategories:
		m.categoryView, cmd = m.categoryView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Todo Tracker", m.summary())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.todoList.View()
	case ViewTodoCreate:
		return m.todoForm.View()
	case ViewCategories:
		return m.categoryView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// summary returns the open/total todo count for the header.
func (m Model) summary() string {
	todos := m.store.Todos()
	open := 0
	for _, t := range todos {
		if !t.Completed {
			open++
		}
	}
	return fmt.Sprintf("%d open / %d total", open, len(todos))
}

// statusLine returns the reminder toast when one is active, otherwise the
// keyboard hints for the current view.
func (m Model) statusLine() string {
	if m.toast != "" {
		return theme.ToastStyle.Render(m.toast)
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewTodoCreate:
		return "enter submit | esc cancel"
	case ViewCategories:
		return "n new | e rename | d delete | esc back"
	default:
		return "q quit | ? help | n new | / search | tab sort | x toggle | d delete | c categories"
	}
}
