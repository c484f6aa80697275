package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"rtc-agent/internal/domain/constants"
	"rtc-agent/internal/domain/errors"
)

// Config is a struct that holds application configuration
type Config struct {
	Demo     DemoConfig
	Log      LogConfig
	Database DatabaseConfig
	Health   HealthConfig
}

// DemoConfig holds the parameters of the update interrupt demonstration
type DemoConfig struct {
	EventCount      int
	InitialYear     int32
	RewriteYear     int32
	RewriteAt       int
	RestoreOnExit   bool
	BackupDirectory string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig holds the optional event journal database settings.
// The journal is disabled while Host is empty.
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// Enabled reports whether a journal database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// HealthConfig holds health check configuration. An empty Port disables the server.
type HealthConfig struct {
	Port string
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader is an implementation that loads configuration from environment variables
type EnvironmentConfigLoader struct{}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader() ConfigLoader {
	return &EnvironmentConfigLoader{}
}

// Load loads configuration from environment variables
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	config := &Config{
		Demo: DemoConfig{
			EventCount:      getEnvIntOrDefault("EVENT_COUNT", constants.DefaultEventCount),
			InitialYear:     int32(getEnvIntOrDefault("INITIAL_YEAR", constants.DefaultInitialYear)),
			RewriteYear:     int32(getEnvIntOrDefault("REWRITE_YEAR", constants.DefaultRewriteYear)),
			RewriteAt:       getEnvIntOrDefault("REWRITE_AT", constants.DefaultRewriteAt),
			RestoreOnExit:   getEnvBoolOrDefault("RESTORE_ON_EXIT", false),
			BackupDirectory: getEnvOrDefault("BACKUP_DIR", constants.DefaultBackupDir),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", constants.DefaultLogLevel),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
		},
		Database: DatabaseConfig{
			Host:         os.Getenv("DB_HOST"),
			Port:         getEnvOrDefault("DB_PORT", constants.DefaultDBPort),
			User:         getEnvOrDefault("DB_USER", "root"),
			Password:     os.Getenv("DB_PASSWORD"),
			Database:     getEnvOrDefault("DB_NAME", constants.DefaultDBName),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 2),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 1),
			MaxLifetime:  getEnvDurationOrDefault("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Health: HealthConfig{
			Port: os.Getenv("HEALTH_PORT"),
		},
	}

	// Validate configuration
	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validate validates the configuration
func (l *EnvironmentConfigLoader) validate(config *Config) error {
	// Validate demo configuration
	if config.Demo.EventCount <= 0 {
		return errors.NewValidationError("invalid event count", nil)
	}
	if config.Demo.RewriteAt < 1 {
		return errors.NewValidationError("invalid rewrite iteration", nil)
	}

	// Validate log configuration
	if config.Log.Format != "json" && config.Log.Format != "text" {
		return errors.NewValidationError("unknown log format: "+config.Log.Format, nil)
	}

	// Validate database configuration only when the journal is enabled
	if config.Database.Enabled() {
		if config.Database.Port == "" {
			return errors.NewValidationError("database port not configured", nil)
		}
		if config.Database.User == "" {
			return errors.NewValidationError("database user not configured", nil)
		}
		if config.Database.Database == "" {
			return errors.NewValidationError("database name not configured", nil)
		}
	}

	return nil
}

// Environment variable helper functions

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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
