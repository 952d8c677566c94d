package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	JWTSecret     string   // Optional: token signing secret, at least 32 bytes
	JWTSecretFile string   // Optional: file the secret is loaded from (or generated into) when JWTSecret is empty (default: ./jwt_secret)
	StoreDriver   string   // Optional: sqlite or mongo (default: sqlite)
	DatabaseFile  string   // Optional: path to SQLite database file (default: ./tasks.db)
	MongoURI      string   // Optional: MongoDB connection string (default: mongodb://localhost:27017)
	MongoDatabase string   // Optional: MongoDB database name (default: tasks)
	BcryptCost    int      // Optional: bcrypt work factor (default: 10)
	CORSOrigins   []string // Optional: browser origins allowed to call the API (default: http://127.0.0.1:5500)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3001)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the configuration from the environment. A .env file (or
// the one named by TASKS_ENV_FILE) is loaded first if present; variables that
// are already set win over it.
func LoadConfig() (Config, error) {
	envFile := getEnvOrDefault("TASKS_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := Config{
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTSecretFile: getEnvOrDefault("JWT_SECRET_FILE", "jwt_secret"),
		StoreDriver:   strings.ToLower(getEnvOrDefault("TASKS_STORE_DRIVER", DriverSQLite)),
		DatabaseFile:  getEnvOrDefault("TASKS_DATABASE_FILE", "tasks.db"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "tasks"),
		BcryptCost:    getEnvIntOrDefault("TASKS_BCRYPT_COST", cryptox.DefaultPasswordCost),
		CORSOrigins:   getEnvListOrDefault("TASKS_CORS_ORIGINS", []string{"http://127.0.0.1:5500"}),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 3001),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg, cfg.Validate()
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("TASKS_DATABASE_FILE must not be empty"))
		}
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DATABASE are required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("TASKS_STORE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverMongo, c.StoreDriver))
	}

	if c.JWTSecret != "" {
		if err := cryptox.ValidateSecret([]byte(c.JWTSecret)); err != nil {
			errs = append(errs, fmt.Errorf("JWT_SECRET: %w", err))
		}
	} else if c.JWTSecretFile == "" {
		errs = append(errs, errors.New("one of JWT_SECRET or JWT_SECRET_FILE is required"))
	}

	if _, err := cryptox.NewPasswordHasher(c.BcryptCost); err != nil {
		errs = append(errs, fmt.Errorf("TASKS_BCRYPT_COST: %w", err))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	return errors.Join(errs...)
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated variable, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
