package domain

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/todo-tracker/internal/model"
)

// Category lifecycle operations. Names are unique across categories under
// trimmed, case-insensitive comparison, and deleting a category atomically
// reassigns its todos and the active selection to the first remaining
// category (or "" when none remain).

// AddCategory appends a new category. It reports false without changing
// state when the trimmed name is empty or collides with an existing name.
// When no category is currently active, the new one becomes active.
func (s *Store) AddCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if s.findCategoryByName(name, "") >= 0 {
		return false
	}

	category := model.Category{
		ID:   uuid.New().String(),
		Name: name,
	}
	s.categories = append(s.categories, category)

	if s.activeCategoryID == "" {
		s.activeCategoryID = category.ID
	}

	s.saveCategories()
	return true
}

// RenameCategory renames a category in place. It reports false when the
// id is unknown, the trimmed name is empty, or the name collides with a
// different category.
func (s *Store) RenameCategory(id, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findCategory(id)
	if idx < 0 {
		return false
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false
	}
	if s.findCategoryByName(newName, id) >= 0 {
		return false
	}

	s.categories[idx].Name = newName
	s.saveCategories()
	return true
}

// DeleteCategory removes a category and reassigns every dependent todo to
// the first remaining category, or to "" when none remain. The active
// selection follows the same fallback. An unknown id is a no-op.
//
// The cascade runs entirely under the lock, so no reader can observe a todo
// referencing the removed category.
func (s *Store) DeleteCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findCategory(id)
	if idx < 0 {
		return
	}

	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)

	fallbackID := ""
	if len(s.categories) > 0 {
		fallbackID = s.categories[0].ID
	}

	todosChanged := false
	for i := range s.todos {
		if s.todos[i].CategoryID == id {
			s.todos[i].CategoryID = fallbackID
			todosChanged = true
		}
	}

	if s.activeCategoryID == id {
		s.activeCategoryID = fallbackID
	}

	s.saveCategories()
	if todosChanged {
		s.saveTodos()
	}
}

// findCategoryByName returns the index of the category whose trimmed name
// equals name case-insensitively, skipping the category with id excludeID.
// Callers must hold the lock.
func (s *Store) findCategoryByName(name, excludeID string) int {
	for i := range s.categories {
		if s.categories[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(s.categories[i].Name), name) {
			return i
		}
	}
	return -1
}
