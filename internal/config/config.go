package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration
type Config struct {
	// Database connection string (DSN)
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// Maximum database connection pool size
	MaxDBConnections int

	// Enable debug logging
	Debug bool

	// JWT token configuration
	JWT JWTConfig

	// Directory where customer profile images are stored
	ProfileImageDir string
}

// JWTConfig holds the settings for issuing and verifying bearer tokens.
//
// The backend is its own token issuer: tokens are signed with a single
// process-wide HMAC key and validated only by signature and expiry. There is
// no key rotation, no refresh tokens and no revocation list; a token stays
// valid until its expiry passes.
type JWTConfig struct {
	// SigningKey is the shared HMAC secret. Required for serving requests.
	SigningKey string

	// TTL is the token lifetime. Tokens expire TTL after issuance.
	TTL time.Duration
}

// Load reads configuration from environment variables with fallback defaults
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "file:customers.db"),
		ServerAddr:       getEnv("SERVER_ADDR", "localhost:8080"),
		MaxDBConnections: getEnvInt("MAX_DB_CONNECTIONS", 25),
		Debug:            getEnvBool("DEBUG", false),
		ProfileImageDir:  getEnv("PROFILE_IMAGE_DIR", "data/profile-images"),
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_SIGNING_KEY", ""),
			TTL:        getEnvDuration("JWT_TTL", 24*time.Hour),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be a positive duration")
	}

	// The signing key is only required by commands that serve or issue
	// tokens; admin commands that just touch the database can run without it.
	return cfg, nil
}

// RequireSigningKey validates that a signing key is configured.
// Called by commands that issue or verify tokens.
func (c *Config) RequireSigningKey() error {
	if c.JWT.SigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY is required")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable (e.g. "24h", "30m")
// or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
