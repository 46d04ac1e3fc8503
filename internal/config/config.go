// Package config provides configuration management for ccmate using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ccmate/ccmate/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "ccmate"

// Config represents the top-level configuration structure.
type Config struct {
	Version   int          `mapstructure:"version" yaml:"version"`
	ClaudeDir string       `mapstructure:"claude_dir" yaml:"claude_dir"`
	AppDir    string       `mapstructure:"app_dir" yaml:"app_dir"`
	Backup    BackupConfig `mapstructure:"backup" yaml:"backup"`
	Usage     UsageConfig  `mapstructure:"usage" yaml:"usage"`
}

// BackupConfig controls snapshot retention.
type BackupConfig struct {
	// Retention is the number of backups kept by prune. Zero keeps everything.
	Retention int `mapstructure:"retention" yaml:"retention"`
}

// UsageConfig controls usage report defaults.
type UsageConfig struct {
	// Days is the default report window for the usage command.
	Days int `mapstructure:"days" yaml:"days"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support
	viper.SetEnvPrefix("CCMATE")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("claude_dir", paths.ClaudeDir())
	viper.SetDefault("app_dir", paths.AppConfigDir())
	viper.SetDefault("backup.retention", 10)
	viper.SetDefault("usage.days", 30)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
