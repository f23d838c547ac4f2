package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Push     PushConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port                  string
	Env                   string
	LogLevel              string
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	AllowedOrigins        []string
	AllowedOriginSuffixes []string
}

// FirebaseConfig holds the service-account credential location and
// Firestore settings
type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	TokenCollection string
	MaxTokens       int
}

// PushConfig holds settings for the send endpoint
type PushConfig struct {
	APIKey          string
	RateLimitPerMin int
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is loaded first when
// present; real environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Env:          getEnv("SERVER_ENV", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:5173",
				"http://localhost:4173",
				"http://127.0.0.1:5173",
				"http://127.0.0.1:4173",
			}),
			AllowedOriginSuffixes: getSliceEnv("CORS_ALLOWED_ORIGIN_SUFFIXES", []string{".vercel.app"}),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: resolveCredentialsPath(),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			TokenCollection: getEnv("FCM_TOKEN_COLLECTION", "fcmTokens"),
			MaxTokens:       getIntEnv("FCM_MAX_TOKENS_PER_REQUEST", 100),
		},
		Push: PushConfig{
			APIKey:          strings.TrimSpace(getEnv("PUSH_API_KEY", "")),
			RateLimitPerMin: getIntEnv("RATE_LIMIT_PER_MINUTE", 30),
		},
	}, nil
}

// resolveCredentialsPath picks the service-account file path from
// GOOGLE_APPLICATION_CREDENTIALS, falling back to
// FIREBASE_SERVICE_ACCOUNT_PATH when the former is unset.
func resolveCredentialsPath() string {
	if path := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")); path != "" {
		return path
	}
	return strings.TrimSpace(os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"))
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and
// valid. It returns an error describing all validation failures, or nil
// if valid. A missing or unreadable credential file is fatal here: no
// push can succeed without it.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Credential validation
	if c.Firebase.CredentialsPath == "" {
		errs = append(errs, errors.New("GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_PATH is required"))
	} else if info, err := os.Stat(c.Firebase.CredentialsPath); err != nil {
		errs = append(errs, fmt.Errorf("credential file %s is not readable: %w", c.Firebase.CredentialsPath, err))
	} else if info.IsDir() {
		errs = append(errs, fmt.Errorf("credential path %s is a directory, expected a file", c.Firebase.CredentialsPath))
	}

	// Firestore validation
	if c.Firebase.TokenCollection == "" {
		errs = append(errs, errors.New("FCM_TOKEN_COLLECTION is required"))
	}
	if c.Firebase.MaxTokens <= 0 {
		errs = append(errs, errors.New("FCM_MAX_TOKENS_PER_REQUEST must be positive"))
	}

	// Push validation
	if c.Push.RateLimitPerMin <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
