package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/mutual/pkg/httpx"
)

// Store drivers accepted by MATCH_STORE_DRIVER.
const (
	StoreDriverSQLite = "sqlite"
	StoreDriverMongo  = "mongo"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: mutual)

	StoreDriver    string // Store backend, sqlite or mongo (default: sqlite)
	DatabaseFile   string // Path to the SQLite database file (default: ./mutual.db)
	MongoURI       string // MongoDB connection string (default: mongodb://localhost:27017)
	MongoDatabase  string // MongoDB database name (default: mutual)
	PepperFile     string // Path to the password pepper file (default: ./pepper)
	SigningKeyFile string // Path to the Ed25519 signing key, created when missing; empty uses an ephemeral key
	TokenTTL       time.Duration
	CORSOrigins    []string // Browser origins allowed to call the API; empty disables CORS

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("MATCH_ISSUER", "mutual"),
		StoreDriver:         strings.ToLower(getEnvOrDefault("MATCH_STORE_DRIVER", StoreDriverSQLite)),
		DatabaseFile:        getEnvOrDefault("MATCH_DATABASE_FILE", "mutual.db"),
		MongoURI:            getEnvOrDefault("MATCH_MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnvOrDefault("MATCH_MONGO_DATABASE", "mutual"),
		PepperFile:          getEnvOrDefault("MATCH_PEPPER_FILE", "pepper"),
		SigningKeyFile:      os.Getenv("MATCH_SIGNING_KEY_FILE"),
		TokenTTL:            getEnvDurationOrDefault("MATCH_TOKEN_TTL", time.Hour),
		CORSOrigins:         httpx.ParseOrigins(os.Getenv("MATCH_CORS_ORIGINS")),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
