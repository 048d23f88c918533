package store

import (
	"context"

	"github.com/nhle/todo-tracker/internal/model"
)

// Record keys for the three persisted records.
const (
	recordTodos      = "todos"
	recordCategories = "categories"
	recordSortMode   = "sortMode"
)

// Store defines the persistence interface for the three independent
// records the application keeps: the todo collection, the category
// collection, and the current sort mode.
//
// Loads never fail: on a missing record, a parse failure, or a record of
// the wrong shape they return the caller-supplied default. Saves report
// errors, but callers treat writes as best-effort and keep the in-memory
// state authoritative for the rest of the session.
type Store interface {
	LoadTodos(ctx context.Context) []model.Todo
	SaveTodos(ctx context.Context, todos []model.Todo) error

	// LoadCategories returns the persisted categories, dropping entries
	// without a string id and name individually. The seed list is returned
	// when no categories record exists or it cannot be decoded.
	LoadCategories(ctx context.Context, seed []model.Category) []model.Category
	SaveCategories(ctx context.Context, categories []model.Category) error

	LoadSortMode(ctx context.Context, def string) string
	SaveSortMode(ctx context.Context, mode string) error

	Close() error
}
