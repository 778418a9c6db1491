// ABOUTME: healthlog configuration management with backend selection.
// ABOUTME: Handles settings, environment overrides, and the storage backend factory.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/harperreed/healthlog/internal/charm"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/models"
)

// Backend names.
const (
	BackendCharm  = "charm"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Environment variables that override the config file.
const (
	EnvBackend = "HEALTHLOG_BACKEND"
	EnvDataDir = "HEALTHLOG_DATA_DIR"
)

// Config stores healthlog configuration.
type Config struct {
	// Backend selects the storage backend: "charm" (default), "badger",
	// "sqlite", or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data and logs.
	// Supports ~ expansion. Defaults to ~/.local/share/healthlog.
	DataDir string `json:"data_dir,omitempty"`

	// HeightCm is used for BMI. Unset means a reference height is assumed.
	HeightCm *float64 `json:"height_cm,omitempty"`

	// WeightUnit is the display unit for weight statistics: "kg" or "lbs".
	WeightUnit string `json:"weight_unit,omitempty"`

	// Debug tees debug logging to stderr.
	Debug bool `json:"debug,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "charm".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendCharm
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogDir returns the directory the rotating log file lives in.
func (c *Config) GetLogDir() string {
	return filepath.Join(c.GetDataDir(), "logs")
}

// GetWeightUnit returns the display weight unit, defaulting to kg.
func (c *Config) GetWeightUnit() (models.WeightUnit, error) {
	return models.ParseWeightUnit(c.WeightUnit)
}

// Validate checks the fields that have a fixed domain.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case BackendCharm, BackendBadger, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	if _, err := c.GetWeightUnit(); err != nil {
		return err
	}
	if c.HeightCm != nil && (*c.HeightCm <= 0 || *c.HeightCm > 300) {
		return fmt.Errorf("height_cm must be between 0 and 300, got %v", *c.HeightCm)
	}
	return nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "healthlog")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore creates the key-value store for the configured backend.
func (c *Config) OpenStore() (kv.Store, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	var (
		store kv.Store
		err   error
	)
	switch backend {
	case BackendCharm:
		store, err = openCharm()
	case BackendBadger:
		store, err = openBadger(filepath.Join(dataDir, "badger"))
	case BackendSQLite:
		store, err = openSQLite(filepath.Join(dataDir, "healthlog.db"))
	case BackendMemory:
		store = kv.NewMemory()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	return store, nil
}

func openCharm() (kv.Store, error) {
	c, err := charm.InitClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func openBadger(dir string) (kv.Store, error) {
	b, err := kv.OpenBadger(dir)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func openSQLite(path string) (kv.Store, error) {
	s, err := kv.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthlog", "config.json")
}

// Load reads config from disk, then applies overrides from a .env file
// beside it and from the process environment. The process environment wins.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	dotenv, err := loadDotenv(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(dotenv)
	return cfg, nil
}

func loadDotenv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return env, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv(dotenv map[string]string) {
	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if v := get(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := get(EnvDataDir); v != "" {
		c.DataDir = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
