package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultLineAPIEndpoint    = "https://api.line.me"
	DefaultFormConfigCacheTTL = 5 * time.Minute
)

// Config holds the application settings. It is built once at startup and
// passed by pointer; nothing mutates it afterwards.
type Config struct {
	DatabaseDriver string
	DatabaseURL    string
	ServerPort     int
	LogLevel       slog.Level

	LineChannelAccessToken string
	LineAPIEndpoint        string

	RedisURL           string
	FormConfigCacheTTL time.Duration

	CORSAllowedOrigins []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string

	Forms *FormsConfig
}

// ArchiveEnabled reports whether raw submissions should be copied to R2.
func (c *Config) ArchiveEnabled() bool {
	return c.R2AccountID != "" && c.R2BucketName != ""
}

// Database holds what is needed to reach the roster database.
type Database struct {
	Driver string
	URL    string
}

// LoadDatabase reads only the database settings, for commands that do not
// talk to LINE.
func LoadDatabase() (Database, error) {
	_ = godotenv.Load()

	driver := getEnvOrDefault("DATABASE_DRIVER", "postgres")
	if driver != "postgres" && driver != "sqlite3" {
		return Database{}, fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite3, got %q", driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Database{}, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	return Database{Driver: driver, URL: dbURL}, nil
}

// Load reads the configuration from environment variables.
// A .env file is loaded first when present (handy for local development).
func Load() (*Config, error) {
	database, err := LoadDatabase()
	if err != nil {
		return nil, err
	}

	token := os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("LINE_CHANNEL_ACCESS_TOKEN environment variable is not set")
	}

	port, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	cacheTTL := DefaultFormConfigCacheTTL
	if raw := os.Getenv("FORM_CONFIG_CACHE_TTL"); raw != "" {
		cacheTTL, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid FORM_CONFIG_CACHE_TTL environment variable: %w", err)
		}
	}

	forms, err := LoadForms(getEnvOrDefault("FORMS_CONFIG_PATH", "forms.yml"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseDriver:         database.Driver,
		DatabaseURL:            database.URL,
		ServerPort:             port,
		LogLevel:               level,
		LineChannelAccessToken: token,
		LineAPIEndpoint:        getEnvOrDefault("LINE_API_ENDPOINT", DefaultLineAPIEndpoint),
		RedisURL:               os.Getenv("REDIS_URL"),
		FormConfigCacheTTL:     cacheTTL,
		CORSAllowedOrigins:     splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		R2AccountID:            os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:          os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:      os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:           os.Getenv("R2_BUCKET_NAME"),
		Forms:                  forms,
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
