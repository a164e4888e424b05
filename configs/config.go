package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"todo-api/pkg/resource"
)

const DefaultSecretKey = "change-me"

type ServerConfig struct {
	Port            int           `validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

type DatabaseConfig struct {
	URL             string `validate:"required"`
	MaxOpenConns    int    `validate:"gte=0"`
	MaxIdleConns    int    `validate:"gte=0"`
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
	Password string
	Database int `validate:"gte=0"`
}

type RateLimitConfig struct {
	Enabled      bool
	Namespace    string
	MaxPerSecond int `validate:"gte=0"`
	MaxActive    int `validate:"gte=0"`
}

type Config struct {
	ApplicationName string `validate:"required"`
	SecretKey       string `validate:"required"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	Server          ServerConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	RateLimit       RateLimitConfig
	TodoStatsCron   string
}

// Load reads .env (when present), the application properties and builds a validated Config.
// PROPERTIES_FILE_PATH replaces the embedded application.yml.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		if err := resource.LoadFile(path); err != nil {
			return nil, err
		}
	} else if err := resource.Load(ApplicationYAML); err != nil {
		return nil, err
	}

	return FromProperties()
}

// FromProperties builds a Config from the properties currently loaded in pkg/resource.
func FromProperties() (*Config, error) {
	cfg := &Config{
		ApplicationName: resource.GetString("app.name"),
		SecretKey:       resource.GetString("app.secret-key"),
		LogLevel:        strings.ToLower(resource.GetString("app.log.level")),
		Server: ServerConfig{
			Port:            resource.GetInt("app.server.port"),
			ShutdownTimeout: resource.GetDuration("app.server.shutdown-timeout"),
		},
		Database: DatabaseConfig{
			URL:             resource.GetString("app.db.url"),
			MaxOpenConns:    resource.GetInt("app.db.max-open-conns"),
			MaxIdleConns:    resource.GetInt("app.db.max-idle-conns"),
			ConnMaxLifetime: resource.GetDuration("app.db.conn-max-lifetime"),
		},
		Redis: RedisConfig{
			Host:     resource.GetString("app.redis.host"),
			Port:     resource.GetInt("app.redis.port"),
			Password: resource.GetString("app.redis.password"),
			Database: resource.GetInt("app.redis.database"),
		},
		RateLimit: RateLimitConfig{
			Enabled:      resource.GetBool("app.rate-limit.enabled"),
			Namespace:    resource.GetString("app.rate-limit.namespace"),
			MaxPerSecond: resource.GetInt("app.rate-limit.max-per-second"),
			MaxActive:    resource.GetInt("app.rate-limit.max-active"),
		},
		TodoStatsCron: resource.GetString("app.schedule.todo-stats.cron"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// UsesDefaultSecret reports whether SECRET_KEY was left at the development default.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}
