package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress  string
	DatabasePath   string
	SessionBackend string // "memory" or "redis"
	RedisURL       string
	SessionTTL     time.Duration
	AllowedOrigins []string
	LogLevel       string
}

// Load reads configuration from the environment, after picking up an
// optional .env file. Missing keys fall back to development defaults.
func Load() *Config {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	return &Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8080"),
		DatabasePath:   getEnv("DATABASE_PATH", "planner.db"),
		SessionBackend: getEnv("SESSION_BACKEND", "memory"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		SessionTTL:     getDurationEnv("SESSION_TTL", 24*time.Hour),
		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "*")},
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
