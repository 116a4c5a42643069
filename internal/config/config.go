package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	History  HistoryConfig
	Logging  LoggingConfig
}

// ServerConfig holds backend connection settings.
type ServerConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKeyEnv   string `mapstructure:"api_key_env"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// DatabaseConfig holds the local transcript archive settings.
type DatabaseConfig struct {
	Path string
}

// HistoryConfig holds record-list presentation settings.
type HistoryConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// LoggingConfig holds the log file settings. A TUI owns stdout, so logs
// always go to a file.
type LoggingConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix AIXDB_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.api_key_env", "AIXDB_API_KEY")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.timeout_secs", 30)
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "aixdb", "aixdb.db"))
	v.SetDefault("history.page_size", 8)
	v.SetDefault("logging.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "aixdb", "aixdb.log"))
	v.SetDefault("logging.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("AIXDB_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "aixdb"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("AIXDB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the settings flow for non-sensitive preferences; the API
// key belongs in env vars.
func Save(cfg Config) error {
	path := os.Getenv("AIXDB_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "aixdb", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("server.base_url", cfg.Server.BaseURL)
	v.Set("server.api_key_env", cfg.Server.APIKeyEnv)
	v.Set("server.api_key", cfg.Server.APIKey)
	v.Set("server.timeout_secs", cfg.Server.TimeoutSecs)
	v.Set("database.path", cfg.Database.Path)
	v.Set("history.page_size", cfg.History.PageSize)
	v.Set("logging.path", cfg.Logging.Path)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
