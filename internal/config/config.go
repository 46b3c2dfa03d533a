package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config is the persistent application configuration
type Config struct {
	// Database connection
	Database DatabaseConfig `json:"database"`

	// UI Preferences
	UI UIConfig `json:"ui"`

	// Background refresh of the admin tables
	Refresh RefreshConfig `json:"refresh"`

	Log LogConfig `json:"log"`

	// Where the cart and wishlist live when not kept in the database
	Cart CartConfig `json:"cart"`
}

// DatabaseConfig selects the store backend. Empty means a SQLite file in the
// data directory; postgres:// URLs select Postgres.
type DatabaseConfig struct {
	DSN string `json:"dsn"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	ProductPageSize    int  `json:"product_page_size"`
	AdminPageSize      int  `json:"admin_page_size"`
	ResetPageOnRefresh bool `json:"reset_page_on_refresh"` // Admin tables go back to page 1 on reload
}

// RefreshConfig controls the coordinator
type RefreshConfig struct {
	IntervalSeconds int `json:"interval_seconds"` // 0 disables periodic refresh
	MinGapMillis    int `json:"min_gap_ms"`       // Minimum gap between manual refreshes
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `json:"level"` // debug, info, warn, error
}

// CartConfig holds cart persistence settings
type CartConfig struct {
	Path string `json:"path,omitempty"` // JSON file; empty keeps the cart in the database
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ProductPageSize: 6,
			AdminPageSize:   5,
		},
		Refresh: RefreshConfig{
			IntervalSeconds: 30,
			MinGapMillis:    1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DataDir returns the storefront data directory. STOREFRONT_HOME overrides
// the default of ~/.storefront.
func DataDir() string {
	if dir := os.Getenv("STOREFRONT_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".storefront")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// envFileName is the dotenv file read from beside the config file.
const envFileName = ".env"

// DatabaseDSN returns the configured DSN, or the default SQLite file.
func (c *Config) DatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return filepath.Join(DataDir(), "storefront.db")
}

// RefreshInterval returns the periodic refresh interval; zero disables it.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh.IntervalSeconds) * time.Second
}

// MinRefreshGap returns the minimum gap between manual refreshes.
func (c *Config) MinRefreshGap() time.Duration {
	return time.Duration(c.Refresh.MinGapMillis) * time.Millisecond
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults. A corrupt
// file also yields defaults so a bad edit never locks the user out.
// A .env file in the same directory is applied next, then environment
// variables, so a real variable beats the file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			cfg = DefaultConfig()
		}
		cfg.normalize()
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := cfg.LoadEnvFile(filepath.Join(filepath.Dir(path), envFileName)); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	cfg.AutoPopulateFromEnv()
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes config to path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // DSN may carry a password
}

// AutoPopulateFromEnv overrides settings from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Database.DSN = dsn
	}
	if dsn := os.Getenv("STOREFRONT_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if v := os.Getenv("STOREFRONT_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.UI.ProductPageSize = n
			c.UI.AdminPageSize = n
		}
	}
	if lvl := os.Getenv("STOREFRONT_LOG_LEVEL"); lvl != "" {
		c.Log.Level = strings.ToLower(lvl)
	}
}

// LoadEnvFile applies KEY=value lines from a dotenv-style file, the same
// keys AutoPopulateFromEnv reads. It sets config fields only; the process
// environment is left alone.
func (c *Config) LoadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		switch strings.TrimSpace(key) {
		case "STOREFRONT_DSN", "DATABASE_URL":
			c.Database.DSN = value
		case "STOREFRONT_PAGE_SIZE":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				c.UI.ProductPageSize = n
				c.UI.AdminPageSize = n
			}
		case "STOREFRONT_LOG_LEVEL":
			c.Log.Level = strings.ToLower(value)
		}
	}

	return nil
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.UI.ProductPageSize <= 0 {
		c.UI.ProductPageSize = d.UI.ProductPageSize
	}
	if c.UI.AdminPageSize <= 0 {
		c.UI.AdminPageSize = d.UI.AdminPageSize
	}
	if c.Refresh.IntervalSeconds < 0 {
		c.Refresh.IntervalSeconds = 0
	}
	if c.Refresh.MinGapMillis < 0 {
		c.Refresh.MinGapMillis = 0
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
