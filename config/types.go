package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	CouchPotato CouchPotatoConfig `mapstructure:"couchpotato"`
	Slack       SlackConfig       `mapstructure:"slack"`
	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// CouchPotatoConfig holds CouchPotato API connection details
type CouchPotatoConfig struct {
	Host    string        `mapstructure:"host"`
	APIKey  string        `mapstructure:"apikey"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// HasSettings reports whether both host and API key are set
func (c CouchPotatoConfig) HasSettings() bool {
	return c.Host != "" && c.APIKey != ""
}

// SlackConfig holds the slash command tokens and the reply webhook
type SlackConfig struct {
	Tokens        TokensConfig `mapstructure:"tokens"`
	Hooks         HooksConfig  `mapstructure:"hooks"`
	SigningSecret string       `mapstructure:"signing_secret"`
	BotName       string       `mapstructure:"bot_name"`
}

// TokensConfig holds the verification token of each slash command variant
type TokensConfig struct {
	Media string `mapstructure:"media"`
	M     string `mapstructure:"m"`
}

// HooksConfig holds webhook URLs
type HooksConfig struct {
	Incoming string `mapstructure:"incoming"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
