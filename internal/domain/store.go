package domain

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nhle/todo-tracker/internal/model"
	"github.com/nhle/todo-tracker/internal/store"
)

// Store holds the authoritative in-memory state: the todo and category
// collections, the current sort mode, and the transient search text.
//
// Every mutation runs to completion under the lock and triggers a
// best-effort write of the affected record(s); persistence failures are
// swallowed and the in-memory state stays the source of truth for the
// session. Readers (the UI and the reminder scheduler) receive copied
// snapshots, never the internal slices.
type Store struct {
	mu      sync.RWMutex
	persist store.Store

	todos      []model.Todo
	categories []model.Category
	sortMode   model.SortMode
	searchText string

	// activeCategoryID is the category preselected for new todos. It is a
	// transient preference, not persisted.
	activeCategoryID string

	// lastID guards id monotonicity when two todos are created within the
	// same millisecond.
	lastID int64

	now func() time.Time
}

// NewStore loads the persisted records through the given adapter and
// returns a ready store. A missing or corrupt todos record yields an empty
// collection; a missing categories record yields the default seed set.
func NewStore(persist store.Store) *Store {
	ctx := context.Background()

	s := &Store{
		persist: persist,
		now:     time.Now,
	}
	s.todos = persist.LoadTodos(ctx)
	s.categories = persist.LoadCategories(ctx, model.DefaultCategories())
	s.sortMode = model.ParseSortMode(persist.LoadSortMode(ctx, string(model.DefaultSortMode)))

	if len(s.categories) > 0 {
		s.activeCategoryID = s.categories[0].ID
	}
	for _, t := range s.todos {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}

	return s
}

// AddTodo validates and creates a new todo at the front of the collection.
// It reports false without changing state when the trimmed title is empty
// or categoryID does not resolve to an existing category.
func (s *Store) AddTodo(title, description string, priority model.Priority, categoryID, dueDate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	if s.findCategory(categoryID) < 0 {
		return false
	}
	if !priority.Valid() {
		priority = model.DefaultPriority
	}

	todo := model.Todo{
		ID:          s.nextID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Completed:   false,
		Priority:    priority,
		CategoryID:  categoryID,
		DueDate:     strings.TrimSpace(dueDate),
	}

	s.todos = append([]model.Todo{todo}, s.todos...)
	s.saveTodos()
	return true
}

// ToggleTodo flips the completed flag of the matching todo.
// An unknown id is a no-op.
func (s *Store) ToggleTodo(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Completed = !s.todos[i].Completed
			s.saveTodos()
			return
		}
	}
}

// DeleteTodo removes the matching todo. An unknown id is a no-op.
func (s *Store) DeleteTodo(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			s.saveTodos()
			return
		}
	}
}

// SetSortMode replaces the current sort mode and persists it.
func (s *Store) SetSortMode(mode model.SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sortMode = mode
	_ = s.persist.SaveSortMode(context.Background(), string(mode))
}

// SetSearchText replaces the transient search text. Not persisted.
func (s *Store) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchText = text
}

// Todos returns a snapshot copy of the todo collection.
func (s *Store) Todos() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]model.Todo, len(s.todos))
	copy(snapshot, s.todos)
	return snapshot
}

// Categories returns a snapshot copy of the category collection, in
// sequence order.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]model.Category, len(s.categories))
	copy(snapshot, s.categories)
	return snapshot
}

// SortMode returns the current sort mode.
func (s *Store) SortMode() model.SortMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortMode
}

// SearchText returns the current search text.
func (s *Store) SearchText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchText
}

// ActiveCategoryID returns the category preselected for new todos,
// or "" when no category exists.
func (s *Store) ActiveCategoryID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeCategoryID
}

// SetActiveCategory changes the preselected category. It reports false
// when the id does not resolve.
func (s *Store) SetActiveCategory(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCategory(id) < 0 {
		return false
	}
	s.activeCategoryID = id
	return true
}

// CategoryName resolves a category id to its display name.
func (s *Store) CategoryName(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.findCategory(id); i >= 0 {
		return s.categories[i].Name, true
	}
	return "", false
}

// nextID mints a creation-ordered id from the current wall clock.
// Callers must hold the write lock.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// findCategory returns the index of the category with the given id, or -1.
// Callers must hold the lock.
func (s *Store) findCategory(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}

// saveTodos writes the todo record, ignoring failures.
// Callers must hold the write lock.
func (s *Store) saveTodos() {
	_ = s.persist.SaveTodos(context.Background(), s.todos)
}

// saveCategories writes the category record, ignoring failures.
// Callers must hold the write lock.
func (s *Store) saveCategories() {
	_ = s.persist.SaveCategories(context.Background(), s.categories)
}
