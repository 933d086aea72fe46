package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings is the persisted application configuration.
type Settings struct {
	Server   ServerSettings   `json:"server"`
	Database DatabaseSettings `json:"database"`
	TMDB     TMDBSettings     `json:"tmdb"`
	Logging  LoggingSettings  `json:"logging"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	ListenAddr string `json:"listenAddr"`
}

// DatabaseSettings configures the sqlite user-state store.
type DatabaseSettings struct {
	Path string `json:"path"`
}

// TMDBSettings configures the metadata provider.
type TMDBSettings struct {
	APIKey   string `json:"apiKey"`
	Language string `json:"language"`
}

// LoggingSettings configures the rotated log file. An empty File logs to
// stderr only.
type LoggingSettings struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
}

// DefaultSettings returns the configuration used when no settings file
// exists yet.
func DefaultSettings() *Settings {
	return &Settings{
		Server:   ServerSettings{ListenAddr: ":8480"},
		Database: DatabaseSettings{Path: "data/ignisplay.db"},
		TMDB:     TMDBSettings{Language: "en-US"},
		Logging: LoggingSettings{
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Manager loads and persists the JSON settings file.
type Manager struct {
	path string

	mu     sync.Mutex
	cached *Settings
}

// NewManager creates a settings manager for the given file path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load returns the current settings, reading the file on first use. A
// missing file yields defaults (with environment overrides applied) rather
// than an error.
func (m *Manager) Load() (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil {
		return m.cached, nil
	}

	settings := DefaultSettings()

	data, err := os.ReadFile(m.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run, defaults apply.
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	default:
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse settings: %w", err)
		}
	}

	applyEnvOverrides(settings)
	m.cached = settings
	return settings, nil
}

// Save writes the settings file and refreshes the cached copy.
func (m *Manager) Save(settings *Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Dir(m.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	m.cached = settings
	return nil
}

func applyEnvOverrides(settings *Settings) {
	if v := os.Getenv("IGNISPLAY_LISTEN_ADDR"); v != "" {
		settings.Server.ListenAddr = v
	}
	if v := os.Getenv("IGNISPLAY_DB_PATH"); v != "" {
		settings.Database.Path = v
	}
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		settings.TMDB.APIKey = v
	}
	if v := os.Getenv("TMDB_LANGUAGE"); v != "" {
		settings.TMDB.Language = v
	}
	if v := os.Getenv("IGNISPLAY_LOG_FILE"); v != "" {
		settings.Logging.File = v
	}
}
