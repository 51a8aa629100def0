// Package config loads server configuration from defaults, an optional
// .env file, and the environment. The secret and store settings are passed
// into constructors explicitly; nothing here is a package global.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config holds runtime settings for the inventory server.
type Config struct {
	Addr          string        // bind address for the HTTP endpoint
	StorageDriver string        // "sqlite" or "bolt"
	SQLitePath    string        // sqlite database file
	BoltPath      string        // bbolt database file
	JWTSecret     string        // HMAC secret for signing tokens (HS256)
	TokenTTL      time.Duration // fixed token validity window
	CORSOrigin    string        // allowed CORS origin
	BcryptCost    int           // bcrypt cost factor; 0 means library default
	LogLevel      string        // debug, info, warn, error
	LogFormat     string        // text or json
}

// LoadDefaults populates Config with development defaults.
// The JWT secret has no default: the server refuses to start without one.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.StorageDriver = DriverSQLite
	c.SQLitePath = "stockroom.db"
	c.BoltPath = "stockroom.bolt"
	c.TokenTTL = time.Hour
	c.CORSOrigin = "*"
	c.BcryptCost = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Load builds a Config by applying defaults, then overlaying values from an
// optional .env file and the environment, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	// Missing .env is fine; the environment alone is enough
	_ = godotenv.Load()

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.StorageDriver = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.SQLitePath = v
	}
	if v := os.Getenv("BOLT_PATH"); v != "" {
		c.BoltPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		c.TokenTTL = ttl
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		c.CORSOrigin = v
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
		c.BcryptCost = cost
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.StorageDriver != DriverSQLite && c.StorageDriver != DriverBolt {
		return fmt.Errorf("unknown storage driver %q (want %q or %q)",
			c.StorageDriver, DriverSQLite, DriverBolt)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}
