package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/piwi3910/floorplan/internal/model"
)

// Environment variables that override the config file.
const (
	EnvListen   = "FLOORPLAN_LISTEN"
	EnvRedisURL = "FLOORPLAN_REDIS_URL"
	EnvLogLevel = "FLOORPLAN_LOG_LEVEL"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.floorplan/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".floorplan")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// SaveAppConfig persists an AppConfig to the given path as TOML.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// LoadAppConfig reads an AppConfig from the given path. Keys missing from
// the file keep their defaults. If the file does not exist, it returns
// DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// ApplyEnv loads an optional .env file from the working directory and
// overlays the FLOORPLAN_* variables on config.
func ApplyEnv(config *model.AppConfig) {
	_ = godotenv.Load()
	if v := os.Getenv(EnvListen); v != "" {
		config.Server.Listen = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		config.Server.RedisURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = v
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most limit entries.
func AddRecentProject(config *model.AppConfig, path string, limit int) {
	recent := []string{path}
	for _, p := range config.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	config.RecentProjects = recent
}
