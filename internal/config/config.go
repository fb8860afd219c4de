package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Storage backends for the key-value store.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// demoJWTSecret signs tokens when JWT_SECRET is unset.
const demoJWTSecret = "lumo-demo-secret"

type Config struct {
	HTTPPort     string
	LogLevel     string
	Storage      string
	DatabaseURL  string
	RedisURL     string
	JWTSecret    string
	GeminiAPIKey string
	LoginDelay   time.Duration
	StreamPace   float64
}

// Load reads a .env file if present and returns the configuration taken from
// the environment, with defaults for anything unset.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, relying on environment variables")
	}

	return &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Storage:      getEnv("LUMO_STORAGE", StorageSQLite),
		DatabaseURL:  getEnv("DATABASE_URL", "lumo.db"),
		RedisURL:     getEnv("REDIS_URL", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		LoginDelay:   getEnvAsDuration("LOGIN_DELAY", time.Second),
		StreamPace:   getEnvAsFloat("STREAM_PACE", 1),
	}
}

// BindFlags registers flags that override the environment-derived values.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Storage, "storage", c.Storage, "Key-value storage backend (memory, sqlite, redis)")
	fs.StringVar(&c.DatabaseURL, "database-url", c.DatabaseURL, "SQLite data source name")
	fs.StringVar(&c.RedisURL, "redis-url", c.RedisURL, "Redis URL, required with --storage=redis")
	fs.DurationVar(&c.LoginDelay, "login-delay", c.LoginDelay, "Simulated login latency")
	fs.Float64Var(&c.StreamPace, "stream-pace", c.StreamPace, "Multiplier on streaming delays, 0 disables them")
}

// Validate checks the configuration and fills in the demo signing secret
// when none was provided.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required with storage %q", c.Storage)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}

	if c.StreamPace < 0 {
		return fmt.Errorf("stream pace must not be negative, got %v", c.StreamPace)
	}
	if c.LoginDelay < 0 {
		return fmt.Errorf("login delay must not be negative, got %v", c.LoginDelay)
	}

	if c.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, signing tokens with the demo secret")
		c.JWTSecret = demoJWTSecret
	}
	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}
