package config

import (
	"os"
	"strconv"
	"time"

	"gbsaview/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Render  RenderConfig
	Session SessionConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig holds file upload limits
type UploadConfig struct {
	MaxFileSizeMB int64
}

// RenderConfig holds chart rendering settings
type RenderConfig struct {
	DPI int
}

// SessionConfig holds session lifecycle settings
type SessionConfig struct {
	TTL time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Upload: UploadConfig{
			MaxFileSizeMB: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)),
		},
		Render: RenderConfig{
			DPI: getEnvIntOrDefault("RENDER_DPI", 300),
		},
		Session: SessionConfig{
			TTL: getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxFileSizeMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Render.DPI <= 0 {
		return errors.ConfigInvalid("RENDER_DPI must be positive")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
