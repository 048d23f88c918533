package store

import (
	"context"

	"github.com/nhle/todo-tracker/internal/model"
)

// NoopStore is a Store for environments without a usable backing database:
// every load returns its default and every save succeeds without writing
// anything. State then lives only for the duration of the process.
type NoopStore struct{}

// NewNoopStore returns a Store that persists nothing.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (*NoopStore) LoadTodos(context.Context) []model.Todo {
	return []model.Todo{}
}

func (*NoopStore) SaveTodos(context.Context, []model.Todo) error {
	return nil
}

func (*NoopStore) LoadCategories(_ context.Context, seed []model.Category) []model.Category {
	return seed
}

func (*NoopStore) SaveCategories(context.Context, []model.Category) error {
	return nil
}

func (*NoopStore) LoadSortMode(_ context.Context, def string) string {
	return def
}

func (*NoopStore) SaveSortMode(context.Context, string) error {
	return nil
}

func (*NoopStore) Close() error {
	return nil
}
