// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in .serialgap/config.json.
type Config struct {
	HoldingsPath  string `json:"holdings_path,omitempty"`  // Last imported holdings export
	DocumentsPath string `json:"documents_path,omitempty"` // Default documents JSONL export
}

const (
	SerialgapDir = ".serialgap"
	ConfigFile   = "config.json"
	CacheDir     = "cache"
	DBFile       = "serialgap.db"
)

// SerialgapPath returns the path to the .serialgap directory from a root path.
func SerialgapPath(root string) string {
	return filepath.Join(root, SerialgapDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, SerialgapDir, ConfigFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, SerialgapDir, CacheDir)
}

// DBPath returns the path to serialgap.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, SerialgapDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a serialgap repository.
func IsRepository(root string) bool {
	info, err := os.Stat(SerialgapPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a serialgap repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a serialgap repository (no .serialgap directory found)")
		}
		abs = parent
	}
}

// Init creates the repository layout under the given root.
func Init(root string) error {
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return fmt.Errorf("creating repository directories: %w", err)
	}
	if _, err := os.Stat(ConfigPath(root)); os.IsNotExist(err) {
		cfg := &Config{}
		if err := cfg.Save(root); err != nil {
			return err
		}
	}
	return nil
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
