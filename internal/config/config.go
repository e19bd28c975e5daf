package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBPath         string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Server
	Port        string
	CORSOrigins string

	// Rate limiting (RateLimitMax <= 0 disables the limiter)
	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisURL        string

	// Observability
	SentryDSN        string
	AppEnv           string
	LogLevel         string
	LogRetentionDays int
}

func Load() *Config {
	return &Config{
		DBDriver:       getEnv("DB_DRIVER", DriverPostgres),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "taskdb"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBPath:         getEnv("DB_PATH", "taskdb.db"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 120),
		RateLimitWindow: parseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"), time.Minute),
		RedisURL:        getEnv("REDIS_URL", ""),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogRetentionDays: getEnvInt("LOG_RETENTION_DAYS", 30),
	}
}

// Validate reports settings that would prevent the server from starting.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD environment variable is required")
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH environment variable is required for sqlite")
		}
	default:
		return errors.New("DB_DRIVER must be postgres or sqlite")
	}
	if c.LogRetentionDays < 1 {
		return errors.New("LOG_RETENTION_DAYS must be at least 1")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
