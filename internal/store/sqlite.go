package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/todo-tracker/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
// Each record is kept as a JSON value in a single key-value table.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// LoadTodos returns the persisted todo collection, or an empty collection
// when the record is missing or cannot be decoded as a list.
func (s *SQLiteStore) LoadTodos(ctx context.Context) []model.Todo {
	raw, ok := s.getValue(ctx, recordTodos)
	if !ok {
		return []model.Todo{}
	}

	var todos []model.Todo
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		return []model.Todo{}
	}
	if todos == nil {
		return []model.Todo{}
	}
	return todos
}

// SaveTodos writes the full todo collection.
func (s *SQLiteStore) SaveTodos(ctx context.Context, todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	return s.setValue(ctx, recordTodos, todos)
}

// LoadCategories returns the persisted categories. Entries whose id or name
// is not a string are dropped individually; the seed list is returned only
// when the record itself is missing or malformed.
func (s *SQLiteStore) LoadCategories(ctx context.Context, seed []model.Category) []model.Category {
	raw, ok := s.getValue(ctx, recordCategories)
	if !ok {
		return seed
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return seed
	}
	if entries == nil {
		return seed
	}

	categories := make([]model.Category, 0, len(entries))
	for _, entry := range entries {
		var c model.Category
		if err := json.Unmarshal(entry, &c); err != nil {
			continue
		}
		if c.ID == "" || c.Name == "" {
			continue
		}
		categories = append(categories, c)
	}
	return categories
}

// SaveCategories writes the full category collection.
func (s *SQLiteStore) SaveCategories(ctx context.Context, categories []model.Category) error {
	if categories == nil {
		categories = []model.Category{}
	}
	return s.setValue(ctx, recordCategories, categories)
}

// LoadSortMode returns the persisted sort mode string, or def when absent.
func (s *SQLiteStore) LoadSortMode(ctx context.Context, def string) string {
	raw, ok := s.getValue(ctx, recordSortMode)
	if !ok {
		return def
	}

	var mode string
	if err := json.Unmarshal([]byte(raw), &mode); err != nil {
		return def
	}
	if mode == "" {
		return def
	}
	return mode
}

// SaveSortMode writes the current sort mode.
func (s *SQLiteStore) SaveSortMode(ctx context.Context, mode string) error {
	return s.setValue(ctx, recordSortMode, mode)
}

// getValue reads the raw JSON value for a record key. The boolean is false
// when the key is absent or the read fails.
func (s *SQLiteStore) getValue(ctx context.Context, key string) (string, bool) {
	var raw string
	err := s.db.GetContext(ctx, &raw, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		// A failed read degrades to the caller's default, same as absence.
		return "", false
	}
	return raw, true
}

// setValue serializes v as JSON and upserts it under the record key.
func (s *SQLiteStore) setValue(ctx context.Context, key string, v interface{}) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)`,
		key, string(encoded), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing %s record: %w", key, err)
	}
	return nil
}
