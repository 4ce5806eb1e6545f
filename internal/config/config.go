package config

import (
	"os"
	"strconv"

	"scorecard/domain/core"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds warehouse connection settings. URL empty means no
// warehouse: runs execute with a no-op store.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 8),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return nil, core.NewConfigurationError("PORT must be numeric")
	}
	return cfg, nil
}

// HasDatabase reports whether a warehouse is configured
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
