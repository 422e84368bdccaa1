package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataFilePath string

	DBDriver string
	DBPath   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RefreshInterval time.Duration
	MaxRetries      int
	HTTPPort        string

	AppName       string
	LogLevel      string
	FluentEnabled bool
	FluentHost    string
	FluentPort    int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		DataFilePath: getEnv("DATA_FILE_PATH", "./data/properties.csv"),

		DBDriver: strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:   getEnv("DB_PATH", "./data/properties_db.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "listings"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "listings"),
		PostgresDB:       getEnv("POSTGRES_DB", "listings"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 600*time.Second),
		MaxRetries:      getEnvInt("MAX_RETRIES", 5),
		HTTPPort:        getEnv("HTTP_PORT", "8000"),

		AppName:       getEnv("APP_NAME", "realestate-api"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		FluentEnabled: getEnvBool("FLUENT_ENABLED", false),
		FluentHost:    getEnv("FLUENT_HOST", "127.0.0.1"),
		FluentPort:    getEnvInt("FLUENT_PORT", 24224),
	}
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return "host=" + c.PostgresHost +
			" port=" + c.PostgresPort +
			" user=" + c.PostgresUser +
			" password=" + c.PostgresPassword +
			" dbname=" + c.PostgresDB +
			" sslmode=" + c.PostgresSSLMode
	}
	return c.DBPath
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("10m") or a plain number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
