package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	// Path is the SQLite database file location. An empty value resolves
	// to DefaultDatabasePath at startup.
	Path string `mapstructure:"path" yaml:"path"`
}

// ReminderConfig holds due-date reminder settings.
type ReminderConfig struct {
	// IntervalSec is how often (in seconds) the scheduler checks due dates.
	IntervalSec int `mapstructure:"interval_sec" yaml:"interval_sec"`

	// WindowMin is the due-soon window in minutes: a reminder fires when a
	// todo's deadline is this close or closer, but not yet passed.
	WindowMin int `mapstructure:"window_min" yaml:"window_min"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Reminder ReminderConfig `mapstructure:"reminder" yaml:"reminder"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todotrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todotrack", "config.yaml")
}

// DefaultDatabasePath returns the default SQLite file location,
// ~/.config/todotrack/todotrack.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "todotrack.db")
	}
	return filepath.Join(home, ".config", "todotrack", "todotrack.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: ""},
		Reminder: ReminderConfig{
			IntervalSec: 60,
			WindowMin:   5,
		},
		Display: DisplayConfig{Theme: "default"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", "")
	v.SetDefault("reminder.interval_sec", 60)
	v.SetDefault("reminder.window_min", 5)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Reminder.IntervalSec <= 0 {
		cfg.Reminder.IntervalSec = 60
	}
	if cfg.Reminder.WindowMin <= 0 {
		cfg.Reminder.WindowMin = 5
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("reminder", cfg.Reminder)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
