package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nhle/todo-tracker/internal/domain"
	"github.com/nhle/todo-tracker/internal/model"
)

// memStore is an in-memory store.Store used to observe persistence calls.
type memStore struct {
	todos      []model.Todo
	categories []model.Category
	sortMode   string

	hasTodos      bool
	hasCategories bool
	hasSortMode   bool

	saveTodoCalls     int
	saveCategoryCalls int
	saveSortModeCalls int

	failSaves bool
}

func (m *memStore) LoadTodos(context.Context) []model.Todo {
	if !m.hasTodos {
		return []model.Todo{}
	}
	return m.todos
}

func (m *memStore) SaveTodos(_ context.Context, todos []model.Todo) error {
	m.saveTodoCalls++
	if m.failSaves {
		return errors.New("disk full")
	}
	m.todos = todos
	m.hasTodos = true
	return nil
}

func (m *memStore) LoadCategories(_ context.Context, seed []model.Category) []model.Category {
	if !m.hasCategories {
		return seed
	}
	return m.categories
}

func (m *memStore) SaveCategories(_ context.Context, categories []model.Category) error {
	m.saveCategoryCalls++
	if m.failSaves {
		return errors.New("disk full")
	}
	m.categories = categories
	m.hasCategories = true
	return nil
}

func (m *memStore) LoadSortMode(_ context.Context, def string) string {
	if !m.hasSortMode {
		return def
	}
	return m.sortMode
}

func (m *memStore) SaveSortMode(_ context.Context, mode string) error {
	m.saveSortModeCalls++
	if m.failSaves {
		return errors.New("disk full")
	}
	m.sortMode = mode
	m.hasSortMode = true
	return nil
}

func (m *memStore) Close() error { return nil }

func newStore(t *testing.T) (*domain.Store, *memStore) {
	t.Helper()
	persist := &memStore{}
	return domain.NewStore(persist), persist
}

func firstCategoryID(t *testing.T, s *domain.Store) string {
	t.Helper()
	categories := s.Categories()
	if len(categories) == 0 {
		t.Fatal("expected at least one category")
	}
	return categories[0].ID
}

func TestNewStoreDefaults(t *testing.T) {
	s, _ := newStore(t)

	if got := len(s.Todos()); got != 0 {
		t.Errorf("fresh store has %d todos, want 0", got)
	}
	if got := len(s.Categories()); got != len(model.DefaultCategories()) {
		t.Errorf("fresh store has %d categories, want seed set of %d",
			got, len(model.DefaultCategories()))
	}
	if got := s.SortMode(); got != model.DefaultSortMode {
		t.Errorf("fresh store sort mode = %q, want %q", got, model.DefaultSortMode)
	}
	if got := s.ActiveCategoryID(); got != model.DefaultCategories()[0].ID {
		t.Errorf("active category = %q, want first seed category", got)
	}
}

func TestNewStoreIgnoresUnknownSortMode(t *testing.T) {
	persist := &memStore{sortMode: "by-color", hasSortMode: true}
	s := domain.NewStore(persist)

	if got := s.SortMode(); got != model.DefaultSortMode {
		t.Errorf("sort mode = %q, want fallback %q", got, model.DefaultSortMode)
	}
}

func TestAddTodo(t *testing.T) {
	s, persist := newStore(t)
	catID := firstCategoryID(t, s)

	if !s.AddTodo("  Buy groceries  ", "  milk and eggs ", model.PriorityHigh, catID, "") {
		t.Fatal("AddTodo failed for a valid todo")
	}
	if !s.AddTodo("Pay rent", "", model.PriorityMedium, catID, "2026-09-01 09:00") {
		t.Fatal("AddTodo failed for a valid todo")
	}

	todos := s.Todos()
	if len(todos) != 2 {
		t.Fatalf("have %d todos, want 2", len(todos))
	}

	// Newest first.
	if todos[0].Title != "Pay rent" || todos[1].Title != "Buy groceries" {
		t.Errorf("unexpected order: %q, %q", todos[0].Title, todos[1].Title)
	}
	if todos[1].Description != "milk and eggs" {
		t.Errorf("description not trimmed: %q", todos[1].Description)
	}
	if todos[0].ID <= todos[1].ID {
		t.Errorf("ids not increasing: %d then %d", todos[1].ID, todos[0].ID)
	}
	if todos[0].Completed || todos[1].Completed {
		t.Error("new todos must start incomplete")
	}
	if persist.saveTodoCalls != 2 {
		t.Errorf("todo record written %d times, want 2", persist.saveTodoCalls)
	}
}

func TestAddTodoValidation(t *testing.T) {
	s, persist := newStore(t)
	catID := firstCategoryID(t, s)

	if s.AddTodo("", "", model.PriorityMedium, catID, "") {
		t.Error("accepted empty title")
	}
	if s.AddTodo("   ", "", model.PriorityMedium, catID, "") {
		t.Error("accepted whitespace title")
	}
	if s.AddTodo("Valid", "", model.PriorityMedium, "no-such-category", "") {
		t.Error("accepted unknown category")
	}
	if s.AddTodo("Valid", "", model.PriorityMedium, "", "") {
		t.Error("accepted empty category id")
	}

	if got := len(s.Todos()); got != 0 {
		t.Errorf("rejected adds changed state: %d todos", got)
	}
	if persist.saveTodoCalls != 0 {
		t.Errorf("rejected adds wrote to the store %d times", persist.saveTodoCalls)
	}
}

func TestAddTodoNormalizesPriority(t *testing.T) {
	s, _ := newStore(t)
	catID := firstCategoryID(t, s)

	if !s.AddTodo("Task", "", model.Priority("urgent"), catID, "") {
		t.Fatal("AddTodo failed")
	}
	if got := s.Todos()[0].Priority; got != model.DefaultPriority {
		t.Errorf("priority = %q, want default %q", got, model.DefaultPriority)
	}
}

func TestToggleTodo(t *testing.T) {
	s, _ := newStore(t)
	catID := firstCategoryID(t, s)
	s.AddTodo("Task", "", model.PriorityMedium, catID, "")
	id := s.Todos()[0].ID

	s.ToggleTodo(id)
	if !s.Todos()[0].Completed {
		t.Error("toggle did not complete the todo")
	}
	s.ToggleTodo(id)
	if s.Todos()[0].Completed {
		t.Error("second toggle did not reopen the todo")
	}

	s.ToggleTodo(999999)
	if s.Todos()[0].Completed {
		t.Error("toggling an unknown id changed state")
	}
}

func TestDeleteTodo(t *testing.T) {
	s, _ := newStore(t)
	catID := firstCategoryID(t, s)
	s.AddTodo("Keep", "", model.PriorityMedium, catID, "")
	s.AddTodo("Remove", "", model.PriorityMedium, catID, "")
	removeID := s.Todos()[0].ID

	s.DeleteTodo(removeID)

	todos := s.Todos()
	if len(todos) != 1 || todos[0].Title != "Keep" {
		t.Errorf("unexpected todos after delete: %v", todos)
	}

	s.DeleteTodo(removeID)
	if got := len(s.Todos()); got != 1 {
		t.Errorf("deleting an unknown id changed state: %d todos", got)
	}
}

func TestMutationsSurvivePersistenceFailure(t *testing.T) {
	s, persist := newStore(t)
	catID := firstCategoryID(t, s)
	persist.failSaves = true

	if !s.AddTodo("Task", "", model.PriorityMedium, catID, "") {
		t.Fatal("AddTodo should succeed despite a failing store")
	}
	if !s.AddCategory("Errands") {
		t.Fatal("AddCategory should succeed despite a failing store")
	}
	s.SetSortMode(model.SortPriorityDesc)

	if got := len(s.Todos()); got != 1 {
		t.Errorf("in-memory todos = %d, want 1", got)
	}
	if got := s.SortMode(); got != model.SortPriorityDesc {
		t.Errorf("in-memory sort mode = %q", got)
	}
}

func TestSetSortModePersists(t *testing.T) {
	s, persist := newStore(t)

	s.SetSortMode(model.SortDueAsc)

	if got := s.SortMode(); got != model.SortDueAsc {
		t.Errorf("sort mode = %q, want %q", got, model.SortDueAsc)
	}
	if persist.sortMode != string(model.SortDueAsc) {
		t.Errorf("persisted sort mode = %q, want %q", persist.sortMode, model.SortDueAsc)
	}
}

func TestSetSearchTextIsTransient(t *testing.T) {
	s, persist := newStore(t)

	s.SetSearchText("rent")

	if got := s.SearchText(); got != "rent" {
		t.Errorf("search text = %q", got)
	}
	if persist.saveTodoCalls+persist.saveCategoryCalls+persist.saveSortModeCalls != 0 {
		t.Error("setting search text wrote to the store")
	}
}

func TestAddCategory(t *testing.T) {
	s, _ := newStore(t)

	if !s.AddCategory("  Errands  ") {
		t.Fatal("AddCategory failed for a valid name")
	}

	categories := s.Categories()
	last := categories[len(categories)-1]
	if last.Name != "Errands" {
		t.Errorf("name not trimmed: %q", last.Name)
	}
	if last.ID == "" {
		t.Error("new category has no id")
	}
}

func TestAddCategoryRejectsDuplicates(t *testing.T) {
	s, _ := newStore(t)
	before := len(s.Categories())

	// The seed set already contains "Work"; comparison is trimmed and
	// case-insensitive.
	if s.AddCategory("work") {
		t.Error("accepted case-insensitive duplicate of a seed category")
	}
	if s.AddCategory("  WORK  ") {
		t.Error("accepted trimmed duplicate of a seed category")
	}
	if s.AddCategory("") {
		t.Error("accepted empty name")
	}
	if s.AddCategory("   ") {
		t.Error("accepted whitespace name")
	}

	if got := len(s.Categories()); got != before {
		t.Errorf("rejected adds changed the category count: %d -> %d", before, got)
	}
}

func TestRenameCategory(t *testing.T) {
	s, _ := newStore(t)
	catID := firstCategoryID(t, s)

	if !s.RenameCategory(catID, "Office") {
		t.Fatal("rename failed")
	}
	if name, _ := s.CategoryName(catID); name != "Office" {
		t.Errorf("renamed category = %q, want Office", name)
	}

	if s.RenameCategory(catID, "personal") {
		t.Error("accepted rename colliding with another category")
	}
	if s.RenameCategory(catID, "  ") {
		t.Error("accepted rename to whitespace")
	}
	if s.RenameCategory("no-such-id", "X") {
		t.Error("accepted rename of unknown category")
	}

	// Changing only the case of a category's own name is allowed.
	if !s.RenameCategory(catID, "OFFICE") {
		t.Error("rejected case-only rename of the same category")
	}
}

func TestDeleteCategoryReassignsTodos(t *testing.T) {
	s, _ := newStore(t)
	categories := s.Categories()
	first, second := categories[0], categories[1]

	s.AddTodo("In first", "", model.PriorityMedium, first.ID, "")
	s.AddTodo("In second", "", model.PriorityMedium, second.ID, "")

	s.DeleteCategory(first.ID)

	for _, c := range s.Categories() {
		if c.ID == first.ID {
			t.Fatal("deleted category still present")
		}
	}
	for _, todo := range s.Todos() {
		if todo.Title == "In first" && todo.CategoryID != second.ID {
			t.Errorf("orphaned todo reassigned to %q, want %q", todo.CategoryID, second.ID)
		}
		if todo.Title == "In second" && todo.CategoryID != second.ID {
			t.Errorf("unrelated todo moved to %q", todo.CategoryID)
		}
	}
	if got := s.ActiveCategoryID(); got != second.ID {
		t.Errorf("active category = %q, want fallback %q", got, second.ID)
	}
}

func TestDeleteLastCategory(t *testing.T) {
	s, _ := newStore(t)
	catID := firstCategoryID(t, s)
	s.AddTodo("Task", "", model.PriorityMedium, catID, "")

	for _, c := range s.Categories() {
		s.DeleteCategory(c.ID)
	}

	if got := len(s.Categories()); got != 0 {
		t.Fatalf("have %d categories, want 0", got)
	}
	if got := s.Todos()[0].CategoryID; got != "" {
		t.Errorf("todo category = %q, want empty fallback", got)
	}
	if got := s.ActiveCategoryID(); got != "" {
		t.Errorf("active category = %q, want empty", got)
	}

	// With no categories left, todos cannot be created.
	if s.AddTodo("Another", "", model.PriorityMedium, "", "") {
		t.Error("accepted a todo while no category exists")
	}

	// The first category added afterwards becomes active again.
	if !s.AddCategory("Fresh") {
		t.Fatal("AddCategory failed")
	}
	if got := s.ActiveCategoryID(); got != s.Categories()[0].ID {
		t.Errorf("active category = %q, want the new category", got)
	}
}

func TestDeleteUnknownCategory(t *testing.T) {
	s, persist := newStore(t)
	before := len(s.Categories())
	savesBefore := persist.saveCategoryCalls

	s.DeleteCategory("no-such-id")

	if got := len(s.Categories()); got != before {
		t.Errorf("category count changed: %d -> %d", before, got)
	}
	if persist.saveCategoryCalls != savesBefore {
		t.Error("deleting an unknown category wrote to the store")
	}
}

func TestSetActiveCategory(t *testing.T) {
	s, _ := newStore(t)
	categories := s.Categories()
	second := categories[1].ID

	if !s.SetActiveCategory(second) {
		t.Fatal("SetActiveCategory rejected a known id")
	}
	if got := s.ActiveCategoryID(); got != second {
		t.Errorf("active category = %q, want %q", got, second)
	}

	if s.SetActiveCategory("no-such-id") {
		t.Error("SetActiveCategory accepted an unknown id")
	}
	if got := s.ActiveCategoryID(); got != second {
		t.Errorf("failed switch changed the active category to %q", got)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s, _ := newStore(t)
	catID := firstCategoryID(t, s)
	s.AddTodo("Task", "", model.PriorityMedium, catID, "")

	snapshot := s.Todos()
	snapshot[0].Title = "tampered"

	if got := s.Todos()[0].Title; got != "Task" {
		t.Errorf("mutating a snapshot leaked into the store: %q", got)
	}
}

func TestStateSurvivesReload(t *testing.T) {
	persist := &memStore{}
	s := domain.NewStore(persist)
	catID := firstCategoryID(t, s)
	s.AddTodo("Persisted", "", model.PriorityHigh, catID, "")
	s.AddCategory("Errands")
	s.SetSortMode(model.SortPriorityAsc)

	reloaded := domain.NewStore(persist)

	if got := len(reloaded.Todos()); got != 1 {
		t.Fatalf("reloaded %d todos, want 1", got)
	}
	if got := reloaded.Todos()[0].Title; got != "Persisted" {
		t.Errorf("reloaded todo title = %q", got)
	}
	if got := len(reloaded.Categories()); got != len(model.DefaultCategories())+1 {
		t.Errorf("reloaded %d categories", got)
	}
	if got := reloaded.SortMode(); got != model.SortPriorityAsc {
		t.Errorf("reloaded sort mode = %q", got)
	}

	// New ids keep increasing past the reloaded collection.
	reloaded.AddTodo("Newer", "", model.PriorityMedium, catID, "")
	todos := reloaded.Todos()
	if todos[0].ID <= todos[1].ID {
		t.Errorf("id %d not greater than reloaded id %d", todos[0].ID, todos[1].ID)
	}
}
