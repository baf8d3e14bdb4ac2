package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// DefaultBaseURL is the storefront API origin the client talks to when nothing else is configured.
const DefaultBaseURL = "http://35.196.79.227:8000"

// Storage backend names accepted by STOREFRONT_STORAGE.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMySQL  = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	BaseURL   string
	Storage   string
	StateFile string
	KeyPrefix string
	LogLevel  string

	RedisAddr string
	RedisDB   int
	RedisPass string
	MySQLDSN  string

	// Mock server settings.
	ServerPort  string
	JWTSecret   string
	SwaggerHost string
	FixtureFile string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		BaseURL:     getEnv("STOREFRONT_BASE_URL", DefaultBaseURL),
		Storage:     getEnv("STOREFRONT_STORAGE", StorageFile),
		StateFile:   getEnv("STOREFRONT_STATE_FILE", defaultStateFile()),
		KeyPrefix:   getEnv("STOREFRONT_KEY_PREFIX", "storefront:"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/storefront?charset=utf8mb4&parseTime=True&loc=Local"),
		ServerPort:  getEnv("SERVER_PORT", "8000"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
		FixtureFile: os.Getenv("STOREFRONT_FIXTURE"),
	}
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront.json"
	}
	return filepath.Join(dir, "storefront", "state.json")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
