package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/floorplan/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := model.DefaultAppConfig()
	cfg.DefaultExpansionGapMm = 12
	cfg.Currency = "USD"
	cfg.Server.RedisURL = "redis://localhost:6379/0"
	cfg.RecentProjects = []string{"/tmp/a.floorplan.json", "/tmp/b.floorplan.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[server]") {
		t.Errorf("expected a [server] table in:\n%s", data)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.DefaultExpansionGapMm != 12 {
		t.Errorf("expected gap 12, got %f", loaded.DefaultExpansionGapMm)
	}
	if loaded.Currency != "USD" {
		t.Errorf("expected USD, got %s", loaded.Currency)
	}
	if loaded.Server.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("unexpected redis url %q", loaded.Server.RedisURL)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.toml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected default listen address, got %s", cfg.Server.Listen)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("currency = \"GBP\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Currency != "GBP" {
		t.Errorf("expected GBP, got %s", cfg.Currency)
	}
	if cfg.DefaultTileSizeMm != model.DefaultTileSizeMm {
		t.Errorf("expected default tile size, got %f", cfg.DefaultTileSizeMm)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after loading")
	}
}

func TestLoadAppConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = valid = toml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid TOML, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvListen, ":9090")
	t.Setenv(EnvRedisURL, "redis://cache:6379/1")
	t.Setenv(EnvLogLevel, "debug")

	cfg := model.DefaultAppConfig()
	ApplyEnv(&cfg)

	if cfg.Server.Listen != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Server.Listen)
	}
	if cfg.Server.RedisURL != "redis://cache:6379/1" {
		t.Errorf("unexpected redis url %q", cfg.Server.RedisURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := model.DefaultAppConfig()
	AddRecentProject(&cfg, "a", 3)
	AddRecentProject(&cfg, "b", 3)
	AddRecentProject(&cfg, "c", 3)
	AddRecentProject(&cfg, "a", 3)
	AddRecentProject(&cfg, "d", 3)

	want := []string{"d", "a", "c"}
	if strings.Join(cfg.RecentProjects, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, cfg.RecentProjects)
	}
}
