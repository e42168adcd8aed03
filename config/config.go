package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MEDIABOT_COUCHPOTATO_APIKEY
const EnvPrefix = "MEDIABOT"

// Load loads the configuration from file and environment. When configPath
// is empty the standard locations are searched and a missing file is not an
// error, so the whole configuration may come from the environment.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".mediabot"))
		}

		// Check /etc
		v.AddConfigPath("/etc/mediabot/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv reads a .env file from the working directory when one exists
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values. Every key is registered so
// environment overrides apply to keys absent from the file.
func setDefaults(v *viper.Viper) {
	// CouchPotato defaults
	v.SetDefault("couchpotato.host", "")
	v.SetDefault("couchpotato.apikey", "")
	v.SetDefault("couchpotato.timeout", "30s")

	// Slack defaults
	v.SetDefault("slack.tokens.media", "")
	v.SetDefault("slack.tokens.m", "")
	v.SetDefault("slack.hooks.incoming", "")
	v.SetDefault("slack.signing_secret", "")
	v.SetDefault("slack.bot_name", "MediaBot")

	// Server defaults
	v.SetDefault("server.addr", ":8080")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Slack.Hooks.Incoming == "" {
		return fmt.Errorf("slack.hooks.incoming is required")
	}

	if cfg.Slack.Tokens.Media == "" && cfg.Slack.Tokens.M == "" {
		return fmt.Errorf("at least one of slack.tokens.media or slack.tokens.m must be set")
	}

	if cfg.CouchPotato.Timeout < 0 {
		return fmt.Errorf("couchpotato.timeout must not be negative")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
