// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"fjacquet/grocelist/internal/kvstore"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by InitializeConfig.
const EnvPrefix = "GROCELIST"

// Default file names under the data directory.
const (
	DefaultPreferencesFile = "grocery_app_preferences.yaml"
	DefaultDatabaseFile    = "grocelist.db"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Storage struct {
		Backend string `mapstructure:"backend" yaml:"backend"`
		Path    string `mapstructure:"path" yaml:"path"`
		Key     string `mapstructure:"key" yaml:"key"`
	} `mapstructure:"storage" yaml:"storage"`

	Catalog struct {
		SeedFile        string `mapstructure:"seed_file" yaml:"seed_file"`
		SearchCacheSize int    `mapstructure:"search_cache_size" yaml:"search_cache_size"`
	} `mapstructure:"catalog" yaml:"catalog"`

	Remote struct {
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		ItemsPath      string `mapstructure:"items_path" yaml:"items_path"`
		SubmitPath     string `mapstructure:"submit_path" yaml:"submit_path"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"remote" yaml:"remote"`

	Export struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig loads configuration from the default locations.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load initializes Viper configuration with hierarchical loading: defaults,
// then the config file, then GROCELIST_* environment variables. An explicit
// configFile must exist; otherwise config.yaml is looked up in
// $HOME/.grocelist, .grocelist and the working directory.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.grocelist")
		v.AddConfigPath(".grocelist")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Storage defaults
	v.SetDefault("storage.backend", kvstore.BackendFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.key", "categories")

	// Catalog defaults
	v.SetDefault("catalog.seed_file", "")
	v.SetDefault("catalog.search_cache_size", 64)

	// Remote defaults
	v.SetDefault("remote.base_url", "http://grocelist123.x10.mx/")
	v.SetDefault("remote.items_path", "get_items.php")
	v.SetDefault("remote.submit_path", "add_item.php")
	v.SetDefault("remote.timeout_seconds", 30)

	// Export defaults
	v.SetDefault("export.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch strings.ToLower(config.Storage.Backend) {
	case kvstore.BackendMemory, kvstore.BackendFile, kvstore.BackendSQLite:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'memory', 'file' or 'sqlite')", config.Storage.Backend)
	}

	if strings.TrimSpace(config.Storage.Key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}

	if config.Catalog.SearchCacheSize < 1 || config.Catalog.SearchCacheSize > 10000 {
		return fmt.Errorf("catalog.search_cache_size must be between 1 and 10000, got: %d", config.Catalog.SearchCacheSize)
	}

	if config.Remote.TimeoutSeconds < 1 || config.Remote.TimeoutSeconds > 300 {
		return fmt.Errorf("remote.timeout_seconds must be between 1 and 300, got: %d", config.Remote.TimeoutSeconds)
	}

	if utf8.RuneCountInString(config.Export.Delimiter) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	return nil
}

// StoragePath returns the configured storage path, or a file under
// $HOME/.grocelist named after the backend when none is set.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	name := DefaultPreferencesFile
	if strings.EqualFold(c.Storage.Backend, kvstore.BackendSQLite) {
		name = DefaultDatabaseFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".grocelist", name)
}

// ExportDelimiter returns the export delimiter as a rune.
func (c *Config) ExportDelimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Export.Delimiter)
	return r
}
