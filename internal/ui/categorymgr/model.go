package categorymgr

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todo-tracker/internal/domain"
	"github.com/nhle/todo-tracker/internal/keys"
	"github.com/nhle/todo-tracker/internal/model"
	"github.com/nhle/todo-tracker/internal/theme"
)

// CategoryListCloseMsg signals the parent to close the category view.
type CategoryListCloseMsg struct{}

// CategoryChangedMsg signals that categories were modified
// (created/renamed/deleted), so dependent views should re-derive.
type CategoryChangedMsg struct{}

type categoryMode int

const (
	modeList categoryMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	name    string
	confirm bool
}

// Model is the Bubble Tea model for category management.
type Model struct {
	mode        categoryMode
	store       *domain.Store
	keys        *keys.KeyMap
	categories  []model.Category
	selectedIdx int
	editingID   string
	isNew       bool
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new category manager model.
func New(s *domain.Store, k *keys.KeyMap, width, height int) Model {
	m := Model{
		mode:  modeList,
		store: s,
		keys:  k,
		fb:    &formBindings{},
		width: width, height: height,
	}
	m.reload()
	return m
}

// Reload refreshes the category list from the domain store. The parent
// calls this before switching to the category view.
func (m *Model) Reload() {
	m.reload()
}

func (m *Model) reload() {
	m.categories = m.store.Categories()
	if m.selectedIdx >= len(m.categories) && m.selectedIdx > 0 {
		m.selectedIdx = len(m.categories) - 1
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.reload()

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CategoryListCloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.categories) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.categories)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.categories) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.categories) - 1
			}
		}
		return m, nil

	case msg.String() == "n":
		m.isNew = true
		m.editingID = ""
		m.fb.name = ""
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case msg.String() == "e":
		if len(m.categories) == 0 {
			return m, nil
		}
		c := m.categories[m.selectedIdx]
		m.isNew = false
		m.editingID = c.ID
		m.fb.name = c.Name
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case msg.String() == "d":
		if len(m.categories) == 0 {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	title := "New Category"
	if !m.isNew {
		title = "Rename Category"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("Category name").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	if m.selectedIdx < len(m.categories) {
		name = m.categories[m.selectedIdx].Name
	}

	description := "Todos in this category become uncategorized."
	if fallback, ok := m.deleteFallbackName(); ok {
		description = fmt.Sprintf("Todos in this category move to %q.", fallback)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete category %q?", name)).
				Description(description).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// deleteFallbackName returns the name of the category that dependent todos
// would be reassigned to if the selected one were deleted.
func (m Model) deleteFallbackName() (string, bool) {
	for i, c := range m.categories {
		if i != m.selectedIdx {
			return c.Name, true
		}
	}
	return "", false
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m.submitForm()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	var ok bool
	if m.isNew {
		ok = m.store.AddCategory(m.fb.name)
	} else {
		ok = m.store.RenameCategory(m.editingID, m.fb.name)
	}

	if ok {
		m.statusMsg = "Category saved"
	} else {
		m.statusMsg = fmt.Sprintf("A category named %q already exists", strings.TrimSpace(m.fb.name))
	}

	m.mode = modeList
	m.reload()
	return m, func() tea.Msg { return CategoryChangedMsg{} }
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		if m.fb.confirm && m.selectedIdx < len(m.categories) {
			m.store.DeleteCategory(m.categories[m.selectedIdx].ID)
			m.statusMsg = "Category deleted"
			m.mode = modeList
			m.reload()
			return m, func() tea.Msg { return CategoryChangedMsg{} }
		}
		m.mode = modeList
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// View renders the category manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Categories"))
	b.WriteString("\n\n")

	if len(m.categories) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("No categories yet. Press 'n' to create one."))
	} else {
		active := m.store.ActiveCategoryID()
		for i, c := range m.categories {
			label := c.Name
			if c.ID == active {
				label += " (active)"
			}

			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"n new | e rename | d delete | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
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
