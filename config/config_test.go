package config_test

import (
	"path/filepath"
	"testing"

	"ignisplay/config"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	manager := config.NewManager(filepath.Join(t.TempDir(), "settings.json"))

	settings, err := manager.Load()
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	defaults := config.DefaultSettings()
	if settings.Server.ListenAddr != defaults.Server.ListenAddr {
		t.Fatalf("expected default listen addr, got %q", settings.Server.ListenAddr)
	}
	if settings.Database.Path != defaults.Database.Path {
		t.Fatalf("expected default database path, got %q", settings.Database.Path)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	manager := config.NewManager(path)
	settings := config.DefaultSettings()
	settings.Server.ListenAddr = ":9000"
	settings.TMDB.APIKey = "abc"

	if err := manager.Save(settings); err != nil {
		t.Fatalf("save returned error: %v", err)
	}

	// A fresh manager reads the persisted values back.
	loaded, err := config.NewManager(path).Load()
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if loaded.Server.ListenAddr != ":9000" {
		t.Fatalf("expected saved listen addr, got %q", loaded.Server.ListenAddr)
	}
	if loaded.TMDB.APIKey != "abc" {
		t.Fatalf("expected saved api key, got %q", loaded.TMDB.APIKey)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("IGNISPLAY_LISTEN_ADDR", ":7000")
	t.Setenv("TMDB_API_KEY", "env-key")

	manager := config.NewManager(filepath.Join(t.TempDir(), "settings.json"))
	settings, err := manager.Load()
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if settings.Server.ListenAddr != ":7000" {
		t.Fatalf("expected env listen addr, got %q", settings.Server.ListenAddr)
	}
	if settings.TMDB.APIKey != "env-key" {
		t.Fatalf("expected env api key, got %q", settings.TMDB.APIKey)
	}
}
