package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir holds the session file and the local blob store (defaults to ~/.subtrack)
	DataDir string `yaml:"data_dir,omitempty"`

	// DatabaseURL is the postgres connection string used for signed-in sessions.
	// Without it, signed-in sessions have no backend.
	DatabaseURL string `yaml:"database_url,omitempty"`

	// DisplayCurrency is used for reports when no preference has been stored
	DisplayCurrency string `yaml:"display_currency,omitempty"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultDataDir returns ~/.subtrack
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".subtrack"
	}
	return filepath.Join(home, ".subtrack")
}

// DefaultConfigPath returns the default config file path (~/.subtrack/config.yaml)
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// LoadConfig reads the config at path. A missing file yields an empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.DisplayCurrency != "" {
		cfg.DisplayCurrency = strings.ToUpper(cfg.DisplayCurrency)
		if !IsSupportedCurrency(cfg.DisplayCurrency) {
			return nil, fmt.Errorf("invalid display_currency %q (supported: %s)",
				cfg.DisplayCurrency, strings.Join(SupportedCurrencies, ", "))
		}
	}

	return &cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetDataDir returns the configured data directory or the default one
func (c *Config) GetDataDir() string {
	if c == nil || c.DataDir == "" {
		return DefaultDataDir()
	}
	return c.DataDir
}

func (c *Config) GetDatabaseURL() string {
	if c == nil {
		return ""
	}
	return c.DatabaseURL
}

// GetDisplayCurrency returns the configured display currency, falling back to the
// one derived from the system locale
func (c *Config) GetDisplayCurrency() string {
	if c == nil || c.DisplayCurrency == "" {
		return DefaultDisplayCurrency()
	}
	return c.DisplayCurrency
}

func (c *Config) GetLogLevel() string {
	if c == nil || c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// ConfigTemplate returns a config populated with the effective defaults
func ConfigTemplate() *Config {
	return &Config{
		DataDir:         DefaultDataDir(),
		DisplayCurrency: DefaultDisplayCurrency(),
		LogLevel:        "warn",
	}
}
