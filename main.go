package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo-tracker/internal/app"
	"github.com/nhle/todo-tracker/internal/domain"
	"github.com/nhle/todo-tracker/internal/model"
	"github.com/nhle/todo-tracker/internal/reminder"
	"github.com/nhle/todo-tracker/internal/store"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "todotrack: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = model.DefaultDatabasePath()
	}
	_ = os.MkdirAll(filepath.Dir(dbPath), 0o755)

	// Fall back to an in-memory-only session when the database cannot be
	// opened; the app stays fully usable, changes just won't survive restart.
	var persist store.Store
	if s, err := store.NewSQLiteStore(dbPath); err == nil {
		persist = s
	} else {
		persist = store.NewNoopStore()
	}
	defer persist.Close()

	domainStore := domain.NewStore(persist)

	sched := reminder.New(
		domainStore.Todos,
		reminder.WithInterval(time.Duration(cfg.Reminder.IntervalSec)*time.Second),
		reminder.WithWindow(time.Duration(cfg.Reminder.WindowMin)*time.Minute),
	)

	p := tea.NewProgram(app.New(domainStore, sched), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "todotrack: %v\n", err)
		os.Exit(1)
	}

	sched.Stop()
}
