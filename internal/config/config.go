package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dmaher/steamswap/internal/cache"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Steam   SteamConfig   `mapstructure:"steam"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SteamConfig locates the Steam installation
type SteamConfig struct {
	Root string `mapstructure:"root"` // Steam installation root, empty for auto-detect
}

// CacheConfig holds library cache configuration
type CacheConfig struct {
	Dir           string        `mapstructure:"dir"`            // Cache directory, empty for memory-only
	ValidDuration time.Duration `mapstructure:"valid_duration"` // How long a snapshot is trusted
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Steam: SteamConfig{
			Root: "",
		},
		Cache: CacheConfig{
			Dir:           defaultCachePath(),
			ValidDuration: cache.DefaultValidDuration,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "steamswap", "steamswap.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "steamswap", "steamswap.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "steamswap")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "steamswap")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "steamswap", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "steamswap", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("STEAMSWAP")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Cache.ValidDuration <= 0 {
		cfg.Cache.ValidDuration = cache.DefaultValidDuration
	}
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	return cfg, nil
}

// expandHome substitutes a leading ~ with the user's home directory so
// paths from the config file work regardless of how they were written.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("steam.root", cfg.Steam.Root)
	viper.Set("cache.dir", cfg.Cache.Dir)
	viper.Set("cache.valid_duration", cfg.Cache.ValidDuration)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearCache removes all cached data
func ClearCache(cfg *Config) error {
	if cfg.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
