package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("loading missing config: %v", err)
	}

	if cfg.Reminder.IntervalSec != 60 {
		t.Errorf("interval = %d, want 60", cfg.Reminder.IntervalSec)
	}
	if cfg.Reminder.WindowMin != 5 {
		t.Errorf("window = %d, want 5", cfg.Reminder.WindowMin)
	}
	if cfg.Display.Theme != "default" {
		t.Errorf("theme = %q, want default", cfg.Display.Theme)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/todos.db
reminder:
  interval_sec: 30
  window_min: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Database.Path != "/tmp/todos.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Reminder.IntervalSec != 30 {
		t.Errorf("interval = %d, want 30", cfg.Reminder.IntervalSec)
	}
	if cfg.Reminder.WindowMin != 10 {
		t.Errorf("window = %d, want 10", cfg.Reminder.WindowMin)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Display.Theme != "default" {
		t.Errorf("theme = %q, want default", cfg.Display.Theme)
	}
}

func TestLoadConfigClampsReminderValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
reminder:
  interval_sec: -5
  window_min: 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Reminder.IntervalSec != 60 {
		t.Errorf("non-positive interval = %d, want clamped to 60", cfg.Reminder.IntervalSec)
	}
	if cfg.Reminder.WindowMin != 5 {
		t.Errorf("non-positive window = %d, want clamped to 5", cfg.Reminder.WindowMin)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Database.Path = "/tmp/custom.db"
	cfg.Reminder.IntervalSec = 120

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if loaded.Database.Path != "/tmp/custom.db" {
		t.Errorf("database path = %q", loaded.Database.Path)
	}
	if loaded.Reminder.IntervalSec != 120 {
		t.Errorf("interval = %d, want 120", loaded.Reminder.IntervalSec)
	}
}
