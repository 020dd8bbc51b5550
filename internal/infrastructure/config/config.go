package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds the HTTP surface configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	HTTPPort int    `mapstructure:"http_port"`
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	// Driver is one of memory, sqlite, postgres.
	Driver string `mapstructure:"driver"`
	// Path is the sqlite database file.
	Path string `mapstructure:"path"`
	// DSN is the postgres connection string.
	DSN string `mapstructure:"dsn"`
}

// EngineConfig points at the translation engine
type EngineConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SpeechConfig configures speech playback
type SpeechConfig struct {
	// Binary is the synthesizer command; empty disables playback.
	Binary string `mapstructure:"binary"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.http_port", 8080)

	// Storage defaults
	viper.SetDefault("storage.driver", "sqlite")
	viper.SetDefault("storage.path", "lexa.db")
	viper.SetDefault("storage.dsn", "")

	// Engine defaults
	viper.SetDefault("engine.base_url", "http://localhost:5000")
	viper.SetDefault("engine.api_key", "")
	viper.SetDefault("engine.timeout_seconds", 30)

	// Speech defaults
	viper.SetDefault("speech.binary", "")

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

// EngineTimeout returns the bound applied to every engine call.
func (c *Config) EngineTimeout() time.Duration {
	if c.Engine.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Engine.TimeoutSeconds) * time.Second
}

// ListenAddr returns the HTTP listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}
