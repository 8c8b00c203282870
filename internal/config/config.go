package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Queue     QueueConfig
	Browser   BrowserConfig
	Extractor ExtractorConfig
	Auth      AuthConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int
}

type QueueConfig struct {
	Type          string
	Key           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
}

type ExtractorConfig struct {
	RenderWait time.Duration
	FieldWait  time.Duration
	MinDelay   time.Duration
	MaxDelay   time.Duration
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getStringSliceOrDefault("SERVER_ALLOWED_ORIGINS", []string{"http://wishesbook.ru", "https://wishesbook.ru"}),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getIntOrDefault("DB_PORT", 5432),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", ""),
			Name:     getEnvOrDefault("DB_NAME", "gifts"),
			MaxConns: getIntOrDefault("DB_MAX_CONNS", 4),
		},
		Queue: QueueConfig{
			Type:          getEnvOrDefault("QUEUE_TYPE", "memory"),
			Key:           getEnvOrDefault("QUEUE_KEY", "gifts:extraction"),
			RedisAddr:     getEnvOrDefault("QUEUE_REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnvOrDefault("QUEUE_REDIS_PASSWORD", ""),
			RedisDB:       getIntOrDefault("QUEUE_REDIS_DB", 0),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			UserAgent:      getEnvOrDefault("BROWSER_USER_AGENT", ""),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "ru-RU,ru;q=0.9,en;q=0.8"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "Europe/Moscow"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "ru-RU"),
		},
		Extractor: ExtractorConfig{
			RenderWait: getDurationOrDefault("EXTRACTOR_RENDER_WAIT", 3*time.Second),
			FieldWait:  getDurationOrDefault("EXTRACTOR_FIELD_WAIT", 2*time.Second),
			MinDelay:   getDurationOrDefault("EXTRACTOR_MIN_DELAY", 1*time.Second),
			MaxDelay:   getDurationOrDefault("EXTRACTOR_MAX_DELAY", 3*time.Second),
		},
		Auth: AuthConfig{
			Secret:   os.Getenv("SECRET_KEY"),
			TokenTTL: getDurationOrDefault("TOKEN_TTL", 30*time.Minute),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("SECRET_KEY must be set")
	}

	if c.Queue.Type != "memory" && c.Queue.Type != "redis" {
		return fmt.Errorf("QUEUE_TYPE must be memory or redis, got %q", c.Queue.Type)
	}

	if c.Extractor.RenderWait <= 0 || c.Extractor.FieldWait <= 0 {
		return fmt.Errorf("extractor waits must be positive")
	}

	if c.Extractor.MinDelay < 0 || c.Extractor.MaxDelay < c.Extractor.MinDelay {
		return fmt.Errorf("extractor delays must satisfy 0 <= min <= max")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
