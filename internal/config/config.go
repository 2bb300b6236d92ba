// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Provider names accepted for PRICE_PROVIDER.
const (
	ProviderYahoo = "yahoo"
	ProviderMock  = "mock"
)

// Config holds application configuration
type Config struct {
	DataDir       string // Base directory for the databases (always absolute)
	Port          int
	LogLevel      string
	DevMode       bool
	PriceProvider string // "yahoo" (live) or "mock" (deterministic synthetic data)
	QuoteAPIURL   string // Base URL of the quote/chart API (overridable for tests)

	// S3-compatible backup target. Backups are disabled when AccessKey is empty.
	Backup BackupConfig
}

// BackupConfig holds object-storage backup configuration
type BackupConfig struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Retention int // days to keep remote backups, 0 keeps everything
}

// Enabled reports whether backups should run.
func (b BackupConfig) Enabled() bool {
	return b.AccessKey != "" && b.SecretKey != "" && b.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("FOLIO_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:       absDataDir,
		Port:          getEnvAsInt("FOLIO_PORT", 8080),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DevMode:       getEnvAsBool("DEV_MODE", false),
		PriceProvider: getEnv("PRICE_PROVIDER", ProviderYahoo),
		QuoteAPIURL:   getEnv("QUOTE_API_URL", "https://query1.finance.yahoo.com"),
		Backup: BackupConfig{
			Endpoint:  getEnv("BACKUP_S3_ENDPOINT", ""),
			Bucket:    getEnv("BACKUP_S3_BUCKET", ""),
			AccessKey: getEnv("BACKUP_S3_ACCESS_KEY", ""),
			SecretKey: getEnv("BACKUP_S3_SECRET_KEY", ""),
			Retention: getEnvAsInt("BACKUP_RETENTION", 7),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.PriceProvider != ProviderYahoo && c.PriceProvider != ProviderMock {
		return fmt.Errorf("invalid PRICE_PROVIDER %q (expected %q or %q)",
			c.PriceProvider, ProviderYahoo, ProviderMock)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
