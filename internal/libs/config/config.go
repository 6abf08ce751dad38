// Package config provides application configuration management from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dsjohal14/stockroom/internal/scope/inventory"
	"github.com/dsjohal14/stockroom/internal/scope/search"
)

// Config holds application configuration
type Config struct {
	InventoryFile string
	StoreBackend  string
	BoltPath      string
	DatabaseURL   string
	APIPort       string
	APIHost       string
	LogLevel      string

	SearchModulus   int
	SearchHash      string
	SearchWorkers   int
	SearchBatch     int
	SearchMalformed string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		InventoryFile:   getEnv("INVENTORY_FILE", "inventory.txt"),
		StoreBackend:    getEnv("STORE_BACKEND", "file"),
		BoltPath:        getEnv("BOLT_PATH", "inventory.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		APIPort:         getEnv("API_PORT", "8080"),
		APIHost:         getEnv("API_HOST", "0.0.0.0"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SearchHash:      getEnv("SEARCH_HASH", "additive"),
		SearchMalformed: getEnv("SEARCH_MALFORMED", "skip"),
	}

	var err error
	if cfg.SearchModulus, err = getEnvInt("SEARCH_MODULUS", search.DefaultModulus); err != nil {
		return nil, err
	}
	if cfg.SearchWorkers, err = getEnvInt("SEARCH_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.SearchBatch, err = getEnvInt("SEARCH_BATCH", 256); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values and cross-field requirements
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "file":
		if c.InventoryFile == "" {
			return fmt.Errorf("INVENTORY_FILE is required for the file backend")
		}
	case "bolt":
		if c.BoltPath == "" {
			return fmt.Errorf("BOLT_PATH is required for the bolt backend")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be file, bolt or postgres, got %q", c.StoreBackend)
	}

	if c.SearchModulus < 2 || c.SearchModulus > search.MaxModulus {
		return fmt.Errorf("SEARCH_MODULUS must be in [2, %d], got %d", search.MaxModulus, c.SearchModulus)
	}
	if _, ok := search.ParseHashKind(c.SearchHash); !ok {
		return fmt.Errorf("SEARCH_HASH must be additive or polynomial, got %q", c.SearchHash)
	}
	if _, ok := inventory.ParseMalformedPolicy(c.SearchMalformed); !ok {
		return fmt.Errorf("SEARCH_MALFORMED must be skip or include, got %q", c.SearchMalformed)
	}
	if c.SearchWorkers < 1 {
		return fmt.Errorf("SEARCH_WORKERS must be positive, got %d", c.SearchWorkers)
	}
	if c.SearchBatch < 1 {
		return fmt.Errorf("SEARCH_BATCH must be positive, got %d", c.SearchBatch)
	}
	return nil
}

// Matcher builds the search matcher described by the config
func (c *Config) Matcher() *search.Matcher {
	kind, _ := search.ParseHashKind(c.SearchHash)
	return search.NewMatcher(search.WithModulus(c.SearchModulus), search.WithHash(kind))
}

// QueryOptions returns the inventory service options described by the config
func (c *Config) QueryOptions() []inventory.Option {
	policy, _ := inventory.ParseMalformedPolicy(c.SearchMalformed)
	return []inventory.Option{
		inventory.WithWorkers(c.SearchWorkers),
		inventory.WithBatchSize(c.SearchBatch),
		inventory.WithMalformedPolicy(policy),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
